package service

import (
	"context"
	"errors"
	"fmt"

	"kuliner-chatbot-be/internal/constant"
	"kuliner-chatbot-be/internal/dto"
	"kuliner-chatbot-be/internal/pkg/logger"
	"kuliner-chatbot-be/pkg/catalog"
)

// ErrCatalogMissing means the configured CSV file does not exist.
var ErrCatalogMissing = errors.New("catalog csv not found")

type IPostService interface {
	GetPosts(ctx context.Context, request *dto.GetPostsRequest) (*dto.GetPostsResponse, error)
}

type postService struct {
	csvPath string
	logger  logger.ILogger
}

// NewPostService serves the catalog listing. The file is re-read on every
// call so edits show up without a restart.
func NewPostService(csvPath string, log logger.ILogger) IPostService {
	return &postService{
		csvPath: csvPath,
		logger:  log,
	}
}

func (s *postService) GetPosts(ctx context.Context, request *dto.GetPostsRequest) (*dto.GetPostsResponse, error) {
	empty := &dto.GetPostsResponse{
		Posts: []dto.Post{},
		Page:  request.Page,
		Limit: request.Limit,
	}

	c, err := catalog.Load(s.csvPath)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			s.logger.Error("Post", "Catalog file not found", map[string]interface{}{
				"path": s.csvPath,
			})
			return nil, fmt.Errorf("%w: %s", ErrCatalogMissing, s.csvPath)
		}
		s.logger.Error("Post", "Error fetching posts", map[string]interface{}{
			"path":  s.csvPath,
			"error": err.Error(),
		})
		return empty, nil
	}

	rows, total := c.Page(request.Page, request.Limit)
	posts := make([]dto.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, toPost(row))
	}

	totalPages := 0
	if request.Limit > 0 {
		totalPages = (total + request.Limit - 1) / request.Limit
	}

	return &dto.GetPostsResponse{
		Posts:      posts,
		Total:      total,
		Page:       request.Page,
		Limit:      request.Limit,
		TotalPages: totalPages,
	}, nil
}

func toPost(row catalog.Row) dto.Post {
	url := row.Get("url")
	if url == "" {
		url = row.Get("inputUrl")
	}
	return dto.Post{
		NamaTempat:      row.GetOr("nama_tempat", constant.UnknownValue),
		Lokasi:          row.GetOr("lokasi", constant.UnknownValue),
		KategoriMakanan: row.GetOr("kategori_makanan", constant.UnknownValue),
		TipeTempat:      row.GetOr("tipe_tempat", constant.UnknownValue),
		RangeHarga:      row.GetOr("range_harga", constant.UnknownValue),
		MenuAndalan:     catalog.SafeList(row.Get("menu_andalan")),
		Fasilitas:       catalog.SafeList(row.Get("fasilitas")),
		JamBuka:         row.GetOr("jam_buka", constant.UnknownValue),
		JamTutup:        row.GetOr("jam_tutup", constant.UnknownValue),
		HariOperasional: catalog.SafeList(row.Get("hari_operasional")),
		Ringkasan:       row.GetOr("ringkasan", constant.NoSummaryAvailable),
		Tags:            catalog.SafeList(row.Get("tags")),
		Url:             url,
		DisplayUrl:      row.Get("displayUrl"),
	}
}
