package api

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aouyang1/mouseglass/media"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalManagerSignalsChanges(t *testing.T) {
	dir := t.TempDir()
	library := media.NewLibrary(dir)
	l := NewLocalManager(library, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	remote := make(chan bool)
	done := make(chan struct{})
	go func() {
		l.Run(ctx, remote)
		close(done)
	}()

	writePNG(t, filepath.Join(dir, "3.png"), 4, 4)
	remote <- true

	select {
	case <-l.Updated:
	case <-time.After(time.Second):
		t.Fatal("expected an update after the rescan")
	}
	_, ok := library.Path(3)
	assert.True(t, ok)

	cancel()
	<-done
}

func TestLocalManagerWithoutDirectory(t *testing.T) {
	l := NewLocalManager(media.NewLibrary(""), time.Hour)

	done := make(chan struct{})
	go func() {
		l.Run(context.Background(), nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("run should return when there is no directory")
	}
}

type fakeS3 struct {
	keys []string
}

func (f *fakeS3) ListObjectsV2(_ context.Context, _ *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
	for _, k := range f.keys {
		out.Contents = append(out.Contents, s3types.Object{Key: aws.String(k)})
	}
	return out, nil
}

func (f *fakeS3) GetObject(_ context.Context, _ *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	panic("unexpected download")
}

func TestRemoteManagerRemovesStaleFiles(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "1.png"), 4, 4)
	writePNG(t, filepath.Join(dir, "2.png"), 4, 4)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep"), 0o644))

	r := newRemoteManager(&fakeS3{keys: []string{"1.png", "readme.md", "nested/5.png"}}, "mice", dir)
	require.NoError(t, r.SyncFolder(context.Background()))

	assert.FileExists(t, filepath.Join(dir, "1.png"))
	assert.NoFileExists(t, filepath.Join(dir, "2.png"))
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))

	select {
	case <-r.Updated:
	default:
		t.Fatal("expected an update after removing a file")
	}

	// nothing changes the second time around
	require.NoError(t, r.SyncFolder(context.Background()))
	select {
	case <-r.Updated:
		t.Fatal("unexpected update")
	default:
	}
}

func TestNewRemoteManagerNeedsDirectory(t *testing.T) {
	_, err := NewRemoteManager(context.Background(), "mice", "", "")
	assert.Error(t, err)
}
