package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/crypto/bcrypt"

	"github.com/Param028/geet-fashion/internal/config"
	"github.com/Param028/geet-fashion/internal/export"
	"github.com/Param028/geet-fashion/internal/session"
	"github.com/Param028/geet-fashion/internal/storage"
	"github.com/Param028/geet-fashion/internal/storage/cloud"
	"github.com/Param028/geet-fashion/internal/storage/local"
)

func main() {
	setCloudCmd := flag.NewFlagSet("set-cloud", flag.ExitOnError)
	cloudURL := setCloudCmd.String("url", "", "Supabase project URL")
	cloudKey := setCloudCmd.String("key", "", "Supabase anon key")

	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	format := exportCmd.String("format", "json", "Export format: json or csv")
	out := exportCmd.String("out", "", "Output file (defaults to stdout)")

	hashCmd := flag.NewFlagSet("hash-password", flag.ExitOnError)
	password := hashCmd.String("password", "", "Password to hash for ADMIN_PASSWORD_HASH")

	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "set-cloud":
		setCloudCmd.Parse(os.Args[2:])
		if *cloudURL == "" || *cloudKey == "" {
			fmt.Println("url and key are required")
			setCloudCmd.PrintDefaults()
			os.Exit(1)
		}
		setCloud(*cloudURL, *cloudKey)
	case "export":
		exportCmd.Parse(os.Args[2:])
		runExport(*format, *out)
	case "hash-password":
		hashCmd.Parse(os.Args[2:])
		if *password == "" {
			fmt.Println("password is required")
			hashCmd.PrintDefaults()
			os.Exit(1)
		}
		hashPassword(*password)
	default:
		usage()
	}
}

func usage() {
	fmt.Println("expected 'set-cloud', 'export' or 'hash-password' subcommand")
	os.Exit(1)
}

func dataDir() string {
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		return dir
	}
	return "./data"
}

func setCloud(url, key string) {
	if err := config.SaveCloudOverride(dataDir(), config.CloudParams{URL: url, Key: key}); err != nil {
		log.Fatalf("Failed to save cloud config: %v", err)
	}
	fmt.Println("Cloud configuration saved.")
}

func runExport(format, out string) {
	dir := dataDir()

	facade := openFacade(dir)
	defer facade.Close()

	ctx := context.Background()
	var (
		raw []byte
		err error
	)
	switch format {
	case "json":
		raw, err = export.BackupJSON(facade.Designs(ctx), facade.Customers(ctx))
	case "csv":
		raw, err = export.CustomersCSV(facade.Customers(ctx))
	default:
		log.Fatalf("Unknown format %q, want json or csv", format)
	}
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	if out == "" {
		os.Stdout.Write(raw)
		return
	}
	if err := os.WriteFile(out, raw, 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", out, err)
	}
	fmt.Printf("Exported to %s\n", out)
}

// openFacade wires the same store selection the server uses.
func openFacade(dir string) *storage.Facade {
	dial := func(p config.CloudParams) (storage.Store, storage.Uploader, error) {
		s, err := cloud.New(p)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	}

	var (
		remote   storage.Store
		uploader storage.Uploader
	)
	if params := config.ResolveCloud(dir); params != nil {
		s, u, err := dial(*params)
		if err != nil {
			log.Fatalf("Failed to connect to cloud store: %v", err)
		}
		remote, uploader = s, u
	}

	localStore, err := local.New(filepath.Join(dir, "boutique.db"))
	if err != nil {
		log.Fatalf("Failed to open local store: %v", err)
	}

	return storage.NewFacade(storage.Options{
		Remote:         remote,
		RemoteUploader: uploader,
		Local:          localStore,
		Session:        session.New(dir),
		DataDir:        dir,
		Dial:           dial,
	})
}

func hashPassword(password string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	fmt.Println(string(hash))
}
