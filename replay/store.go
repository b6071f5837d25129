package replay

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a store has no session with the given id.
var ErrNotFound = errors.New("replay not found")

// Store persists sessions by id.
type Store interface {
	Save(ctx context.Context, s *Session) error
	Load(ctx context.Context, id string) (*Session, error)
	List(ctx context.Context) ([]string, error)
}

func checkID(id string) error {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return fmt.Errorf("invalid replay id %q", id)
	}
	return nil
}

// FileStore keeps one file per session in a directory.
type FileStore struct {
	dir   string
	codec Codec
}

// NewFileStore creates dir if needed. A nil codec selects Binary.
func NewFileStore(dir string, codec Codec) (*FileStore, error) {
	if codec == nil {
		codec = Binary
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create replay dir: %w", err)
	}
	return &FileStore{dir: dir, codec: codec}, nil
}

func (st *FileStore) path(id string) string {
	return filepath.Join(st.dir, id+st.codec.Ext())
}

func (st *FileStore) Save(_ context.Context, s *Session) error {
	if err := checkID(s.ID); err != nil {
		return err
	}
	f, err := os.Create(st.path(s.ID))
	if err != nil {
		return fmt.Errorf("failed to create replay file: %w", err)
	}
	if err := st.codec.Encode(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (st *FileStore) Load(_ context.Context, id string) (*Session, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	f, err := os.Open(st.path(id))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open replay file: %w", err)
	}
	defer f.Close()

	s, err := st.codec.Decode(f)
	if err != nil {
		return nil, err
	}
	s.ID = id
	return s, nil
}

func (st *FileStore) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(st.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list replays: %w", err)
	}
	var ids []string
	for _, e := range entries {
		if id, ok := strings.CutSuffix(e.Name(), st.codec.Ext()); ok && e.Type().IsRegular() {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// ConnectRedis parses url, connects and pings the server.
func ConnectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// RedisStore keeps binary sessions under prefix+"replay:"+id and their ids
// in the set prefix+"replays".
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (rs *RedisStore) key(id string) string { return rs.prefix + "replay:" + id }
func (rs *RedisStore) index() string       { return rs.prefix + "replays" }

func (rs *RedisStore) Save(ctx context.Context, s *Session) error {
	if err := checkID(s.ID); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Binary.Encode(&buf, s); err != nil {
		return err
	}
	_, err := rs.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, rs.key(s.ID), buf.Bytes(), 0)
		pipe.SAdd(ctx, rs.index(), s.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save replay: %w", err)
	}
	return nil
}

func (rs *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	data, err := rs.client.Get(ctx, rs.key(id)).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load replay: %w", err)
	}
	s, err := Binary.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	s.ID = id
	return s, nil
}

func (rs *RedisStore) List(ctx context.Context) ([]string, error) {
	ids, err := rs.client.SMembers(ctx, rs.index()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list replays: %w", err)
	}
	slices.Sort(ids)
	return ids, nil
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*RedisStore)(nil)
)
