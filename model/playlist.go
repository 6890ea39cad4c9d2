package model

import "time"

// Playlist is a saved recommendation result.
type Playlist struct {
	ID        string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Mode      string         `gorm:"type:varchar(20)" json:"mode"`
	Source    string         `gorm:"type:varchar(20)" json:"source"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Items     []PlaylistItem `gorm:"foreignKey:PlaylistID" json:"items,omitempty"`
}

// PlaylistItem is one song inside a saved playlist. SongID keeps the
// normalized identifier, so discovery entries keep their synthesized IDs.
type PlaylistItem struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	PlaylistID string `gorm:"type:varchar(36);index" json:"-"`
	SongID     string `gorm:"type:varchar(191)" json:"songId"`
	Title      string `gorm:"type:varchar(255)" json:"title"`
	Artist     string `gorm:"type:varchar(255)" json:"artist"`
	Album      string `gorm:"type:varchar(255)" json:"album,omitempty"`
	URL        string `gorm:"type:varchar(512)" json:"url"`
	Position   int    `json:"position"`
}
