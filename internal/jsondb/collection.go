package jsondb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/ariefcatur/unicor-shoes/internal/shop"
)

// Collection stores one entity type as a pretty-printed JSON array in a
// single file. Every write replaces the whole file.
type Collection[T any] struct {
	path string
	key  func(T) string
	mu   sync.Mutex
}

func NewCollection[T any](path string, key func(T) string) *Collection[T] {
	return &Collection[T]{path: path, key: key}
}

func (c *Collection[T]) Path() string { return c.path }

func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.read()
}

func (c *Collection[T]) ReplaceAll(ctx context.Context, items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(items)
}

func (c *Collection[T]) Put(ctx context.Context, item T) error {
	return c.Update(ctx, func(items []T) ([]T, error) {
		return shop.ReplaceByKey(items, item, c.key), nil
	})
}

func (c *Collection[T]) Update(ctx context.Context, fn func(items []T) ([]T, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.read()
	if err != nil {
		return err
	}
	out, err := fn(items)
	if err != nil {
		return err
	}
	return c.write(out)
}

// read treats a missing or blank file as an empty collection.
func (c *Collection[T]) read() ([]T, error) {
	b, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.path, err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.path, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// write goes through a temp file and a rename so readers never see a
// half-written array.
func (c *Collection[T]) write(items []T) error {
	if items == nil {
		items = []T{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.path, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(c.path), "."+filepath.Base(c.path)+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", c.path, err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(fileMode); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", c.path, err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", c.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", c.path, err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return fmt.Errorf("write %s: %w", c.path, err)
	}
	return nil
}
