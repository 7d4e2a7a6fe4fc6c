package config

import (
	"flag"
	"io"
	"strings"
)

// jsonConfigPath returns the value of -c / -config in args, or "".
func jsonConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "Path to config file")
	fs.StringVar(&path, "c", "", "Path to config file (short)")
	_ = fs.Parse(filterArgs(args, []string{"-c", "-config", "--c", "--config"}))

	return path
}

// parseFlags overrides cfg with the flags present in args. Flags that are
// absent keep the value from earlier layers.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("accounts", flag.ContinueOnError)

	fs.String("config", "", "Path to config file")
	fs.String("c", "", "Path to config file (short)")

	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "address and port to listen on")
	fs.StringVar(&cfg.StoreDriver, "store", cfg.StoreDriver, "account store: memory, sqlite, postgres or mongo")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN for the sqlite and postgres stores")
	fs.StringVar(&cfg.MongoURI, "mongo-uri", cfg.MongoURI, "MongoDB connection URI")
	fs.StringVar(&cfg.MongoDatabase, "mongo-db", cfg.MongoDatabase, "MongoDB database name")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "graceful shutdown timeout")
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level")

	return fs.Parse(args)
}

// filterArgs keeps only the allowed flags of args, together with their values.
// Both "-f value" and "-f=value" forms are recognised.
func filterArgs(args []string, allowed []string) []string {
	ok := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		ok[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			if _, found := ok[strings.SplitN(arg, "=", 2)[0]]; found {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, found := ok[arg]; found {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}
	return filtered
}
