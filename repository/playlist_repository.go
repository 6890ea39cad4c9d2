package repository

import (
	"context"
	"errors"
	"fmt"

	"EchoFM/db"
	"EchoFM/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlaylistRepository 定义播放列表相关的数据库操作接口
type PlaylistRepository interface {
	// CreatePlaylist 保存播放列表及其歌曲
	CreatePlaylist(ctx context.Context, playlist *model.Playlist) (string, error)

	// GetPlaylistByID 根据ID获取播放列表（包含歌曲）
	GetPlaylistByID(ctx context.Context, id string) (*model.Playlist, error)

	// GetAllPlaylists 获取所有播放列表
	GetAllPlaylists(ctx context.Context) ([]*model.Playlist, error)

	// DeletePlaylist 删除播放列表及其歌曲
	DeletePlaylist(ctx context.Context, id string) error
}

// GormPlaylistRepository GORM实现的播放列表仓库
type GormPlaylistRepository struct {
	db *gorm.DB
}

// NewGormPlaylistRepository 创建新的播放列表仓库实例
func NewGormPlaylistRepository() *GormPlaylistRepository {
	return &GormPlaylistRepository{db: db.GormDB}
}

func (r *GormPlaylistRepository) CreatePlaylist(ctx context.Context, playlist *model.Playlist) (string, error) {
	if playlist.ID == "" {
		playlist.ID = uuid.NewString()
	}
	for i := range playlist.Items {
		playlist.Items[i].PlaylistID = playlist.ID
		playlist.Items[i].Position = i
	}

	if err := r.db.WithContext(ctx).Create(playlist).Error; err != nil {
		return "", fmt.Errorf("failed to create playlist: %w", err)
	}
	return playlist.ID, nil
}

func (r *GormPlaylistRepository) GetPlaylistByID(ctx context.Context, id string) (*model.Playlist, error) {
	var playlist model.Playlist
	err := r.db.WithContext(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
		First(&playlist, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Playlist not found
		}
		return nil, fmt.Errorf("failed to get playlist %s: %w", id, err)
	}
	return &playlist, nil
}

func (r *GormPlaylistRepository) GetAllPlaylists(ctx context.Context) ([]*model.Playlist, error) {
	var playlists []*model.Playlist
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&playlists).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	return playlists, nil
}

func (r *GormPlaylistRepository) DeletePlaylist(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&model.PlaylistItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete playlist items: %w", err)
		}
		if err := tx.Delete(&model.Playlist{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete playlist: %w", err)
		}
		return nil
	})
}
