package call

import (
	"github.com/sirupsen/logrus"
)

// UnaryCall performs a blocking call. The response is returned unchanged; a
// failure comes back as *APIError with the underlying error as its cause.
// Nothing is retried here.
func UnaryCall[T any](fn func() (T, error)) (T, error) {
	resp, err := fn()
	if err != nil {
		var zero T
		return zero, translateAndLog(err)
	}

	return resp, nil
}

// UnaryAsyncCall starts a callback-based call and returns its pending future
// immediately. start is invoked exactly once.
func UnaryAsyncCall[T any](start func(done func(T, error))) *Future[T] {
	future := newFuture[T]()

	start(func(resp T, err error) {
		if err != nil {
			var zero T
			future.complete(zero, translateAndLog(err))
			return
		}

		future.complete(resp, nil)
	})

	return future
}

func translateAndLog(err error) error {
	translated := Translate(err)

	if apiErr, ok := translated.(*APIError); ok {
		logrus.WithFields(logrus.Fields{
			"code":        apiErr.Code.String(),
			"tracking_id": apiErr.TrackingID,
		}).Debugf("unary call failed: %s", apiErr.Message)
	}

	return translated
}
