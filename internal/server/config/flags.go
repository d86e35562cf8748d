package config

import (
	"flag"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/accountkeeper/internal/dbx"
	"github.com/dmitrijs2005/accountkeeper/internal/flagx"
)

var serverFlags = []string{"-a", "-d", "-s", "-k", "-l", "-w", "-m", "-n", "-i", "-u", "-p", "-b", "-g", "-e"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-d string   badger data directory
//	-s string   session token HMAC secret
//	-k string   API key required from clients
//	-l string   log level (debug, info, warn, error)
//	-w string   durability mode (safe, performance)
//	-m int      read cache size, MiB
//	-n int      max concurrent account scans
//	-i int      snapshot interval, minutes (0 disables)
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint
func parseFlags(config *Config) error {
	args := flagx.FilterArgs(os.Args[1:], serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabasePath, "d", config.DatabasePath, "database directory")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.APIKey, "k", config.APIKey, "api key")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	durability := fs.String("w", string(config.Durability), "durability mode")
	fs.Int64Var(&config.ReadCacheMB, "m", config.ReadCacheMB, "read cache size (MiB)")
	fs.IntVar(&config.MaxConcurrentScans, "n", config.MaxConcurrentScans, "max concurrent account scans")
	snapshotInterval := fs.Int("i", int(config.SnapshotInterval.Minutes()), "snapshot interval (in minutes)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 root bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 root region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		return err
	}

	config.Durability = dbx.Durability(*durability)
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			config.SnapshotInterval = time.Duration(*snapshotInterval) * time.Minute
		}
	})
	return nil
}
