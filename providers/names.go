package providers

const (
	// Identifier for the server module provider which reads
	// host-published variables.
	NameServerModule = "server_module"

	// Identifier for the MaxMind database reader.
	NameMaxmind = "maxmind"

	// Identifier for the IP2Location BIN database reader.
	NameIP2Location = "ip2location"

	// Identifier for ipinfo.io.
	NameIPInfo = "ipinfo"
)
