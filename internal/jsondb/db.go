// Package jsondb keeps the storefront collections in flat JSON files:
// users.json, products.json and orders.json under one data directory.
package jsondb

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ariefcatur/unicor-shoes/internal/shop"
	"github.com/sirupsen/logrus"
)

const (
	UsersFile    = "users.json"
	ProductsFile = "products.json"
	OrdersFile   = "orders.json"

	fileMode fs.FileMode = 0o644
)

// Init creates dir and the three collection files, each holding "[]", if
// they are missing. Existing files are left alone.
func Init(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	for _, name := range []string{UsersFile, ProductsFile, OrdersFile} {
		p := filepath.Join(dir, name)
		_, err := os.Stat(p)
		if err == nil {
			continue
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", p, err)
		}
		if err := os.WriteFile(p, []byte("[]"), fileMode); err != nil {
			return fmt.Errorf("create %s: %w", p, err)
		}
	}
	return nil
}

func NewStore(dir string, log logrus.FieldLogger) (*shop.Store, error) {
	if err := Init(dir); err != nil {
		return nil, err
	}
	return &shop.Store{
		Users:    NewCollection(filepath.Join(dir, UsersFile), shop.UserKey),
		Products: NewCollection(filepath.Join(dir, ProductsFile), shop.ProductKey),
		Orders:   NewCollection(filepath.Join(dir, OrdersFile), shop.OrderKey),
		Log:      log,
	}, nil
}
