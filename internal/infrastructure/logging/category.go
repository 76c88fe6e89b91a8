package logging

type Category string
type SubCategory string
type ExtraKey string

const (
	General         Category = "General"
	IO              Category = "IO"
	Internal        Category = "Internal"
	MongoDB         Category = "MongoDB"
	Redis           Category = "Redis"
	RabbitMQ        Category = "RabbitMQ"
	WebSocket       Category = "WebSocket"
	Validation      Category = "Validation"
	RequestResponse Category = "RequestResponse"
	Prometheus      Category = "Prometheus"
)

const (
	// General
	Startup         SubCategory = "Startup"
	Shutdown        SubCategory = "Shutdown"
	RateLimiting    SubCategory = "RateLimiting"
	ExternalService SubCategory = "ExternalService"

	// Store and domain
	Select   SubCategory = "Select"
	Insert   SubCategory = "Insert"
	Update   SubCategory = "Update"
	Delete   SubCategory = "Delete"
	Rollback SubCategory = "Rollback"

	// Messaging
	Publish SubCategory = "Publish"
	Consume SubCategory = "Consume"

	// Identity
	Authentication SubCategory = "Authentication"
)

const (
	AppName      ExtraKey = "AppName"
	LoggerName   ExtraKey = "Logger"
	ClientIp     ExtraKey = "ClientIp"
	HostIp       ExtraKey = "HostIp"
	Method       ExtraKey = "Method"
	StatusCode   ExtraKey = "StatusCode"
	BodySize     ExtraKey = "BodySize"
	Path         ExtraKey = "Path"
	Latency      ExtraKey = "Latency"
	RequestBody  ExtraKey = "RequestBody"
	ResponseBody ExtraKey = "ResponseBody"
	ErrorMessage ExtraKey = "ErrorMessage"
	RoomID       ExtraKey = "RoomID"
	CommentID    ExtraKey = "CommentID"
	UserID       ExtraKey = "UserID"
	RoutingKey   ExtraKey = "RoutingKey"
)
