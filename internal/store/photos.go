package store

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
)

// ImageInfo describes an image without decoding its pixels.
type ImageInfo struct {
	Format string
	Width  int
	Height int
}

// InspectImage checks that data is a PNG or JPEG image.
func InspectImage(data []byte) (ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageInfo{}, fmt.Errorf("photo image %v: %w", err, ErrInvalid)
	}
	return ImageInfo{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// validatePhoto checks a stored photo: base64 text holding a PNG or JPEG.
func validatePhoto(p Photo) error {
	data, err := p.Decode()
	if err != nil {
		return fmt.Errorf("photo image %v: %w", err, ErrInvalid)
	}
	_, err = InspectImage(data)
	return err
}

// AddPhoto stores data as-is, base64-encoded.
func (s *Store) AddPhoto(data []byte, caption, tag string) (*Photo, error) {
	if _, err := InspectImage(data); err != nil {
		return nil, err
	}
	p := Photo{
		Image:   base64.StdEncoding.EncodeToString(data),
		Caption: caption,
		Tag:     tag,
	}
	createdAt := s.timestamp()
	res, err := s.db.Exec(
		`INSERT INTO photos (image, caption, tag, created_at) VALUES (?, ?, ?, ?)`,
		p.Image, p.Caption, p.Tag, createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert photo: %w", err)
	}
	p.ID, _ = res.LastInsertId()
	p.CreatedAt = parseTime(createdAt)
	return &p, nil
}

func (s *Store) ListPhotos() ([]Photo, error) {
	rows, err := s.db.Query(`SELECT id, image, caption, tag, created_at FROM photos ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	defer rows.Close()

	var photos []Photo
	for rows.Next() {
		var p Photo
		var createdAt string
		if err := rows.Scan(&p.ID, &p.Image, &p.Caption, &p.Tag, &createdAt); err != nil {
			return nil, err
		}
		p.CreatedAt = parseTime(createdAt)
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

func (s *Store) DeletePhoto(id int64) error {
	return s.deleteByID("photos", id)
}
