package util

import "github.com/sirupsen/logrus"

// ContinueOrFatal exits the process with the error logged when err is set.
func ContinueOrFatal(err error) {
	if err != nil {
		logrus.WithError(err).Fatal("command failed")
	}
}
