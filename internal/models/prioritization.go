package models

import (
	"strings"
	"time"
)

// PaymentStatus is the settlement state of a prioritization
type PaymentStatus string

const (
	StatusPending   PaymentStatus = "pending"
	StatusConfirmed PaymentStatus = "confirmed"
	StatusFailed    PaymentStatus = "failed"
)

const (
	CurrencyUSDC = "USDC"
	NetworkArc   = "Arc Testnet"
)

// SongRef identifies a song for prioritization
type SongRef struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// Key returns the case and whitespace insensitive identity of the song
func (r SongRef) Key() string {
	return normalizeKeyPart(r.Title) + "|" + normalizeKeyPart(r.Artist)
}

func normalizeKeyPart(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// PrioritizationRecord is the result of a prioritization payment
type PrioritizationRecord struct {
	ID              string        `json:"id"`
	SongTitle       string        `json:"songTitle"`
	Artist          string        `json:"artist"`
	AmountRequested string        `json:"amountRequested"`
	Currency        string        `json:"currency"`
	TransactionID   string        `json:"transactionId"`
	Status          PaymentStatus `json:"status"`
	SettledAt       time.Time     `json:"settledAt"`
	Network         string        `json:"network"`
	IsSimulated     bool          `json:"isSimulated"`
	Position        int           `json:"position"`
	Boosts          int           `json:"boosts"`
	Note            string        `json:"note,omitempty"`
}

// PlaylistEntry is a prioritized song. One row per (title, artist).
type PlaylistEntry struct {
	ID                uint      `gorm:"primarykey" json:"-"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"-"`
	SongKey           string    `gorm:"uniqueIndex;not null" json:"-"`
	Title             string    `gorm:"not null" json:"title"`
	Artist            string    `gorm:"not null" json:"artist"`
	LastAmount        string    `json:"lastAmount"`
	Currency          string    `json:"currency"`
	LastTransactionID string    `json:"lastTransactionId"`
	Boosts            int       `gorm:"default:1" json:"boosts"`
	IsSimulated       bool      `json:"isSimulated"`
	LastPrioritizedAt time.Time `gorm:"index" json:"lastPrioritizedAt"`
}

// NewPlaylistEntry builds an entry from a settled record
func NewPlaylistEntry(rec PrioritizationRecord) PlaylistEntry {
	return PlaylistEntry{
		SongKey:           SongRef{Title: rec.SongTitle, Artist: rec.Artist}.Key(),
		Title:             rec.SongTitle,
		Artist:            rec.Artist,
		LastAmount:        rec.AmountRequested,
		Currency:          rec.Currency,
		LastTransactionID: rec.TransactionID,
		Boosts:            1,
		IsSimulated:       rec.IsSimulated,
		LastPrioritizedAt: rec.SettledAt,
	}
}
