// Package store database for the gallery image catalog
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aouyang1/mouseglass/gallery"
	_ "modernc.org/sqlite"
)

// MemoryDSN keeps the catalog in memory for the life of the process.
const MemoryDSN = "file:mouseglass?mode=memory&cache=shared"

var ErrNotFound = errors.New("image not found")

type Database struct {
	db *sql.DB
}

// NewDatabase opens the catalog database. An empty dbPath uses an in-memory
// database.
func NewDatabase(dbPath string) (*Database, error) {
	dsn := dbPath
	if dsn == "" {
		dsn = MemoryDSN
	} else if !strings.HasPrefix(dsn, "file:") {
		// Create directory if it doesn't exist
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	database := &Database{db: db}

	// Create table if it doesn't exist
	if err := database.createTable(); err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return database, nil
}

func (d *Database) createTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS images (
		id          INTEGER PRIMARY KEY,
		title       TEXT NOT NULL,
		description TEXT NOT NULL,
		category    TEXT NOT NULL,
		likes       INTEGER NOT NULL CHECK (likes >= 0),
		src         TEXT NOT NULL,
		featured    INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_images_category ON images(category, id);
	`
	_, err := d.db.Exec(query)
	return err
}

// SeedImages replaces the catalog with images.
func (d *Database) SeedImages(images []gallery.ImageRecord) error {
	// Use transaction to ensure atomicity
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM images`); err != nil {
		return fmt.Errorf("failed to clear images: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO images (id, title, description, category, likes, src, featured)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, img := range images {
		_, err := stmt.Exec(img.ID, img.Title, img.Description, string(img.Category), img.Likes, img.Src, boolToInt(img.Featured))
		if err != nil {
			return fmt.Errorf("failed to insert image %d: %w", img.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

const selectImages = `SELECT id, title, description, category, likes, src, featured FROM images`

func (d *Database) queryImages(query string, args ...any) ([]gallery.ImageRecord, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query images: %w", err)
	}
	defer rows.Close()

	var images []gallery.ImageRecord
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return images, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanImage(s scanner) (gallery.ImageRecord, error) {
	var img gallery.ImageRecord
	var category string
	var featured int
	if err := s.Scan(&img.ID, &img.Title, &img.Description, &category, &img.Likes, &img.Src, &featured); err != nil {
		return gallery.ImageRecord{}, fmt.Errorf("failed to scan image: %w", err)
	}
	img.Category = gallery.Category(category)
	img.Featured = featured != 0
	return img, nil
}

func (d *Database) GetAllImages() ([]gallery.ImageRecord, error) {
	return d.queryImages(selectImages + ` ORDER BY id ASC`)
}

func (d *Database) GetFeaturedImages(limit int) ([]gallery.ImageRecord, error) {
	return d.queryImages(selectImages+` WHERE featured = 1 ORDER BY id ASC LIMIT ?`, limit)
}

func (d *Database) GetImage(id int) (*gallery.ImageRecord, error) {
	row := d.db.QueryRow(selectImages+` WHERE id = ?`, id)
	img, err := scanImage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get image: %w", err)
	}
	return &img, nil
}

func (d *Database) GetImageCount(category gallery.Category) (int, error) {
	query := `SELECT COUNT(*) FROM images`
	var args []any
	if category != gallery.CategoryAll {
		query += ` WHERE category = ?`
		args = append(args, string(category))
	}

	var count int
	err := d.db.QueryRow(query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get image count: %w", err)
	}
	return count, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (d *Database) Close() error {
	return d.db.Close()
}
