package memory

import "go.uber.org/fx"

// Module provides the order snapshot store.
var Module = fx.Provide(NewOrderStore)
