package metrics

import "go.uber.org/fx"

// Module provides the scrape handler as the `name:"metrics"` http.Handler.
var Module = fx.Options(
	fx.Provide(fx.Annotate(ProvideMetrics, fx.ResultTags(`name:"metrics"`))),
)
