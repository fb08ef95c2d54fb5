package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/aouyang1/mouseglass/util"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	mapset "github.com/deckarep/golang-set/v2"
)

const (
	remoteCheckInterval = time.Duration(1 * time.Hour)
	remoteSyncTimeout   = time.Duration(30 * time.Minute)
)

type s3Client interface {
	s3.ListObjectsV2APIClient
	manager.DownloadAPIClient
}

// RemoteManager mirrors the images of an S3 bucket into the image directory.
type RemoteManager struct {
	client s3Client

	s3Bucket   string
	outputPath string

	Updated chan bool
}

func NewRemoteManager(ctx context.Context, bucket, profile, outputPath string) (*RemoteManager, error) {
	if outputPath == "" {
		return nil, errors.New("an image directory is required to sync from s3, set MG_IMAGE_DIR")
	}

	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	// Load the Shared AWS Configuration (~/.aws/config)
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return newRemoteManager(s3.NewFromConfig(cfg), bucket, outputPath), nil
}

func newRemoteManager(client s3Client, bucket, outputPath string) *RemoteManager {
	return &RemoteManager{
		client:     client,
		s3Bucket:   bucket,
		outputPath: outputPath,
		Updated:    make(chan bool, 1),
	}
}

func (r *RemoteManager) DownloadObject(ctx context.Context, name string) error {
	downloader := manager.NewDownloader(r.client)

	f, err := os.Create(filepath.Join(r.outputPath, name))
	if err != nil {
		return fmt.Errorf("unable to create file for s3 download, %s, %w", name, err)
	}
	defer f.Close()

	if _, err := downloader.Download(ctx, f, &s3.GetObjectInput{
		Bucket: aws.String(r.s3Bucket),
		Key:    aws.String(name),
	}); err != nil {
		return fmt.Errorf("unable to download object from s3, %s, %w", name, err)
	}
	return nil
}

func (r *RemoteManager) getLocalFiles() (mapset.Set[string], error) {
	if err := os.MkdirAll(r.outputPath, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create directory, %s, %w", r.outputPath, err)
	}
	dirs, err := os.ReadDir(r.outputPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read directory, %s, %w", r.outputPath, err)
	}

	localFiles := mapset.NewSet[string]()
	for dir := range slices.Values(dirs) {
		name := dir.Name()
		if dir.IsDir() || !util.IsImage(name) {
			continue
		}
		localFiles.Add(name)
	}

	if localFiles.Cardinality() == 0 {
		slog.Info("no local files found")
	}
	return localFiles, nil
}

func (r *RemoteManager) getRemoteFiles(ctx context.Context) (mapset.Set[string], error) {
	remoteFiles := mapset.NewSet[string]()

	paginator := s3.NewListObjectsV2Paginator(r.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(r.s3Bucket),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("unable to list s3 objects, %s, %w", r.s3Bucket, err)
		}
		for object := range slices.Values(page.Contents) {
			name := aws.ToString(object.Key)
			// only flat keys map onto the image directory
			if filepath.Base(name) != name || !util.IsImage(name) {
				continue
			}
			remoteFiles.Add(name)
		}
	}

	if remoteFiles.Cardinality() == 0 {
		slog.Info("no remote files found")
	}
	return remoteFiles, nil
}

// SyncFolder deletes local images missing from the bucket and downloads the
// ones not yet present locally.
func (r *RemoteManager) SyncFolder(ctx context.Context) error {
	localFiles, err := r.getLocalFiles()
	if err != nil {
		return err
	}

	remoteFiles, err := r.getRemoteFiles(ctx)
	if err != nil {
		return err
	}

	toDelete := localFiles.Difference(remoteFiles).ToSlice()
	toDownload := remoteFiles.Difference(localFiles).ToSlice()
	if len(toDelete) > 0 {
		slog.Info("deleting local files", "count", len(toDelete), "names", toDelete)
		for name := range slices.Values(toDelete) {
			filePath := filepath.Join(r.outputPath, name)
			if err := os.Remove(filePath); err != nil {
				slog.Warn("unable to remove local file", "error", err)
			}
		}
	}
	if len(toDownload) > 0 {
		slog.Info("adding files", "count", len(toDownload), "names", toDownload)
		for name := range slices.Values(toDownload) {
			if err := r.DownloadObject(ctx, name); err != nil {
				slog.Warn("error while downloading s3 object", "name", name, "error", err)
			}
		}
	}

	// Only signal update if there were actual changes
	if len(toDelete) > 0 || len(toDownload) > 0 {
		select {
		case r.Updated <- true:
		default:
		}
	}
	return nil
}

func (r *RemoteManager) Run(ctx context.Context) {
	ticker := time.NewTicker(remoteCheckInterval)
	defer ticker.Stop()

	for {
		syncCtx, cancel := context.WithTimeout(ctx, remoteSyncTimeout)
		if err := r.SyncFolder(syncCtx); err != nil {
			slog.Warn("error while syncing with remote", "error", err)
		}
		cancel()

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
