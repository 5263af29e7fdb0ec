package tracing

// Span names.
const (
	SpanLaunch  = "rnt.launch"
	SpanProcess = "engine.process"
)

// Span attribute keys.
const (
	AttrLaunchID       = "launch.id"
	AttrProfile        = "launch.profile"
	AttrReload         = "launch.reload"
	AttrExecutable     = "engine.executable"
	AttrArgsCount      = "engine.args.count"
	AttrArgs           = "engine.args"
	AttrExitCode       = "engine.exit_code"
	AttrMainAsset      = "engine.iwad"
	AttrSupplementals  = "engine.files.count"
	AttrWatchedChanged = "watch.changed"
)

// Span event names.
const (
	EventCompiled      = "args.compiled"
	EventProcessStart  = "process.started"
	EventAssetsChanged = "assets.changed"
)
