package log

// Common field names for structured logging.
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldPeriod    = "period"
	FieldIndex     = "index"
	FieldAmount    = "amount"
	FieldKind      = "kind"
	FieldCategory  = "category"
	FieldBalance   = "balance"
	FieldCurrency  = "currency"
	FieldLine      = "line"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status_code"
	FieldDuration  = "duration_ms"
)

// Components defines standard component names.
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentLedger   = "ledger"
	ComponentStorage  = "storage"
	ComponentAMQP     = "amqp"
	ComponentWorker   = "worker"
	ComponentExchange = "exchange"
	ComponentSheets   = "sheets"
	ComponentAdmin    = "admin"
)

// Operations defines standard operation names.
const (
	OpClassify = "classify"
	OpParse    = "parse"
	OpAppend   = "append"
	OpDelete   = "delete"
	OpList     = "list"
	OpStats    = "stats"
	OpBalance  = "balance"
	OpConvert  = "convert"
	OpMirror   = "mirror"
	OpSweep    = "sweep"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
