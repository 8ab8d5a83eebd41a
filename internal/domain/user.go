package domain

import (
	"sort"
	"time"
)

// DefaultCoins is the subscription list assigned to every user on first contact.
var DefaultCoins = []string{"BTC", "ETH", "SOL"}

// User represents a registered chat and its subscription preferences.
// The chat id is the document key, so it is not part of the JSON body.
type User struct {
	ChatID   int64     `json:"-"`
	Coins    []string  `json:"coins"`
	Username string    `json:"username,omitempty"`
	JoinedAt time.Time `json:"joined_at"`
}

// SortedCoins returns a copy of the subscription list in alphabetical order.
func (u *User) SortedCoins() []string {
	out := append([]string(nil), u.Coins...)
	sort.Strings(out)
	return out
}

// HasCoin reports whether symbol is already subscribed.
func (u *User) HasCoin(symbol string) bool {
	for _, c := range u.Coins {
		if c == symbol {
			return true
		}
	}
	return false
}

// AddCoin appends symbol to the subscription list.
// Returns false without mutating when the symbol is already present.
func (u *User) AddCoin(symbol string) bool {
	if u.HasCoin(symbol) {
		return false
	}
	u.Coins = append(u.Coins, symbol)
	return true
}

// RemoveCoin deletes symbol from the subscription list.
// Returns false without mutating when the symbol is not present.
func (u *User) RemoveCoin(symbol string) bool {
	for i, c := range u.Coins {
		if c == symbol {
			u.Coins = append(u.Coins[:i], u.Coins[i+1:]...)
			return true
		}
	}
	return false
}
