// Package archive mirrors device snapshots to S3-compatible object storage.
// Each poll that changes a device's statistics becomes one JSON document
// keyed by device name and poll time. Quiet devices are not re-archived:
// a snapshot whose statistics match the previous upload is skipped.
package archive

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/AVISPL/dal-avdevices-wireless-presentation-barco-clickshare/clickshare"
	"github.com/AVISPL/dal-avdevices-wireless-presentation-barco-clickshare/internal/config"
	"github.com/AVISPL/dal-avdevices-wireless-presentation-barco-clickshare/internal/fleet"
)

const (
	defaultPrefix = "clickshare"
	uploadTimeout = 30 * time.Second
)

// Store writes snapshot documents to one bucket.
type Store struct {
	client *minio.Client
	bucket string
	prefix string

	mu       sync.Mutex
	archived map[string][sha256.Size]byte
}

func NewStore(cfg *config.ArchiveConfig) (*Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("missing archive config")
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	bucket := strings.TrimSpace(cfg.Bucket)
	prefix := strings.TrimSpace(cfg.Prefix)
	if endpoint == "" || bucket == "" {
		return nil, fmt.Errorf("missing archive endpoint or bucket")
	}

	accessKey, err := config.ReadSecretFile(cfg.AccessKeyFile)
	if err != nil {
		return nil, fmt.Errorf("read archive access key: %w", err)
	}
	secretKey, err := config.ReadSecretFile(cfg.SecretKeyFile)
	if err != nil {
		return nil, fmt.Errorf("read archive secret key: %w", err)
	}

	host, secure, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}

	client, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	if prefix == "" {
		prefix = defaultPrefix
	}

	return &Store{
		client:   client,
		bucket:   bucket,
		prefix:   prefix,
		archived: make(map[string][sha256.Size]byte),
	}, nil
}

// document is the archived form of one poll.
type document struct {
	Device     string               `json:"device"`
	PolledAt   time.Time            `json:"polled_at"`
	Statistics map[string]string    `json:"statistics"`
	Controls   []clickshare.Control `json:"controls"`
}

// Save uploads one snapshot document unconditionally.
func (s *Store) Save(ctx context.Context, device string, snap *clickshare.Snapshot, polledAt time.Time) error {
	data, err := json.Marshal(document{
		Device:     device,
		PolledAt:   polledAt,
		Statistics: snap.Statistics,
		Controls:   snap.Controls,
	})
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	reader := bytes.NewReader(data)
	_, err = s.client.PutObject(ctx, s.bucket, objectKey(s.prefix, device, polledAt), reader, int64(reader.Len()), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	return err
}

// HandlePoll archives successful polls whose statistics changed since the
// last upload. Control descriptors carry per-poll timestamps, so change
// detection looks at statistics only.
func (s *Store) HandlePoll(ctx context.Context, member *fleet.Member, snap *clickshare.Snapshot, err error) {
	if err != nil {
		return
	}

	name := member.Name()
	fingerprint, ferr := statisticsFingerprint(snap)
	if ferr != nil {
		log.Printf("clickshare archive: fingerprint %s: %v", name, ferr)
		return
	}

	s.mu.Lock()
	previous, seen := s.archived[name]
	s.mu.Unlock()
	if seen && previous == fingerprint {
		return
	}

	_, polledAt := member.LastSnapshot()
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()
	if err := s.Save(ctx, name, snap, polledAt); err != nil {
		log.Printf("clickshare archive: save %s: %v", name, err)
		return
	}

	s.mu.Lock()
	s.archived[name] = fingerprint
	s.mu.Unlock()
}

// statisticsFingerprint hashes the statistics map. encoding/json emits map
// keys in sorted order, so equal maps hash equal.
func statisticsFingerprint(snap *clickshare.Snapshot) ([sha256.Size]byte, error) {
	data, err := json.Marshal(snap.Statistics)
	if err != nil {
		return [sha256.Size]byte{}, err
	}
	return sha256.Sum256(data), nil
}

func objectKey(prefix, device string, polledAt time.Time) string {
	return path.Join(prefix, device, polledAt.UTC().Format(time.RFC3339)+".json")
}

func parseEndpoint(raw string) (string, bool, error) {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", false, fmt.Errorf("parse endpoint: %w", err)
		}
		if u.Host == "" {
			return "", false, fmt.Errorf("invalid endpoint: %q", raw)
		}
		return u.Host, u.Scheme == "https", nil
	}
	return raw, true, nil
}
