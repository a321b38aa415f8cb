package notification

import "go.uber.org/fx"

// Module provides the message generator.
var Module = fx.Provide(NewGenerator)
