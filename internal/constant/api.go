package constant

import "time"

const (
	DefaultProductionTarget = "invest-public-api.tbank.ru:443"
	DefaultSandboxTarget    = "sandbox-invest-public-api.tbank.ru:443"
	DefaultAppName          = "krobus00.invest-orders"
	DefaultCallTimeout      = 30 * time.Second

	AuthorizationHeader = "authorization"
	AppNameHeader       = "x-app-name"
)
