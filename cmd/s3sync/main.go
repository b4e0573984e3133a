// Command s3sync is the command-line client for the s3sync server. It
// renders the bucket as a folder tree and moves files through presigned
// transfer grants.
package main

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/s3sync/s3sync/internal/backend"
	"github.com/s3sync/s3sync/internal/config"
	"github.com/s3sync/s3sync/internal/hierarchy"
	"github.com/s3sync/s3sync/internal/keyspace"
	"github.com/s3sync/s3sync/internal/logging"
	"github.com/s3sync/s3sync/internal/transfer"
	"github.com/s3sync/s3sync/internal/utils"
)

const usage = `Usage: s3sync <command> [args]

Commands:
  ls [prefix]                   list files and folders under a prefix
  upload <file> [folder/]       upload a local file into a folder
  download <key> [dest]         download one object
  download-folder <prefix/> [dest]  download a folder as a zip archive
  preview <key>                 print a short-lived view URL for an object
  status                        show storage usage totals
`

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logging.Configure(cfg.Log.Level, "console")

	client := backend.NewClient(cfg.Client.BaseURL, cfg.Client.Timeout)
	cache := hierarchy.NewCache(client.Listing)
	transport := transfer.NewTransport()

	app := &app{
		view:       hierarchy.NewController(cache),
		uploader:   transfer.NewUploader(client, transport, cache, log),
		downloader: transfer.NewDownloader(client, transport, client, log),
		status:     client.ServerStatus,
		out:        os.Stdout,
	}

	if err := app.run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "s3sync:", err)
		os.Exit(1)
	}
}

type app struct {
	view       *hierarchy.Controller
	uploader   *transfer.Uploader
	downloader *transfer.Downloader
	status     func(context.Context) (backend.Status, error)
	out        io.Writer
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return nil
	}

	switch args[0] {
	case "ls":
		prefix := ""
		if len(args) > 1 {
			prefix = args[1]
		}
		return a.list(ctx, prefix)
	case "upload":
		if len(args) < 2 {
			return fmt.Errorf("upload needs a file path")
		}
		folder := ""
		if len(args) > 2 {
			folder = args[2]
		}
		return a.upload(ctx, args[1], folder)
	case "download":
		if len(args) < 2 {
			return fmt.Errorf("download needs an object key")
		}
		dest := ""
		if len(args) > 2 {
			dest = args[2]
		}
		return a.download(ctx, args[1], dest)
	case "download-folder":
		if len(args) < 2 {
			return fmt.Errorf("download-folder needs a folder prefix")
		}
		dest := ""
		if len(args) > 2 {
			dest = args[2]
		}
		return a.downloadFolder(ctx, args[1], dest)
	case "preview":
		if len(args) < 2 {
			return fmt.Errorf("preview needs an object key")
		}
		return a.preview(ctx, args[1])
	case "status":
		return a.printStatus(ctx)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (a *app) list(ctx context.Context, prefix string) error {
	var err error
	if prefix == "" {
		err = a.view.SelectRoot(ctx)
	} else {
		if !keyspace.IsFolder(prefix) {
			prefix += keyspace.Separator
		}
		err = a.view.SelectFolder(ctx, prefix)
	}
	if err != nil {
		return err
	}

	for _, folder := range a.view.Folders() {
		fmt.Fprintf(a.out, "%-12s %s\n", "-", folder)
	}
	for _, f := range a.view.VisibleFiles() {
		fmt.Fprintf(a.out, "%-12s %s\n", utils.FormatFileSize(f.Size), f.Name)
	}
	fmt.Fprintf(a.out, "%d files\n", a.view.FileCount())
	return nil
}

func (a *app) upload(ctx context.Context, path, folder string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if folder != "" && !keyspace.IsFolder(folder) {
		folder += keyspace.Separator
	}

	result, err := a.uploader.Upload(ctx, folder, transfer.File{
		Name:        filepath.Base(path),
		Size:        info.Size(),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Content:     f,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "uploaded %s (%s)\n", result.Key, utils.FormatFileSize(result.Size))
	if result.RefreshErr != nil {
		fmt.Fprintln(a.out, "note: listing refresh failed; run ls to retry")
	}
	return nil
}

func (a *app) download(ctx context.Context, key, dest string) error {
	if dest == "" {
		dest = keyspace.BaseName(key)
	}
	f, err := os.Create(dest)
	if err != nil {
		return err
	}

	n, err := a.downloader.Object(ctx, key, f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(dest)
		return err
	}

	fmt.Fprintf(a.out, "downloaded %s -> %s (%s)\n", key, dest, utils.FormatFileSize(n))
	return nil
}

func (a *app) downloadFolder(ctx context.Context, prefix, dest string) error {
	if !keyspace.IsFolder(prefix) {
		prefix += keyspace.Separator
	}
	if dest == "" {
		dest = keyspace.ArchiveName(prefix)
	}
	f, err := os.Create(dest)
	if err != nil {
		return err
	}

	n, err := a.downloader.Folder(ctx, prefix, f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(dest)
		return err
	}

	fmt.Fprintf(a.out, "downloaded %s -> %s (%s)\n", prefix, dest, utils.FormatFileSize(n))
	return nil
}

func (a *app) preview(ctx context.Context, key string) error {
	u, err := a.downloader.PreviewURL(ctx, key)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, u)
	return nil
}

func (a *app) printStatus(ctx context.Context) error {
	st, err := a.status(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "bucket:  %s\nobjects: %d\nsize:    %s\n", st.Bucket, st.Objects, st.FormattedBytes)
	return nil
}
