package asclient

// Version is the as-client-go release version. It is the single source of
// truth for version information: the default User-Agent and the CLI version
// command both derive from it.
const Version = "0.3.1"
