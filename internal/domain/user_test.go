package domain

import (
	"reflect"
	"testing"
)

func TestUser_AddCoinDuplicateIsNoop(t *testing.T) {
	u := &User{ChatID: 1, Coins: []string{"BTC", "ETH"}}

	if u.AddCoin("BTC") {
		t.Fatal("adding an existing coin must report false")
	}
	if got := len(u.Coins); got != 2 {
		t.Fatalf("list mutated: %v", u.Coins)
	}

	if !u.AddCoin("SOL") {
		t.Fatal("adding a new coin must report true")
	}
	if !u.HasCoin("SOL") {
		t.Fatal("SOL not added")
	}
}

func TestUser_RemoveCoinAbsentIsRejected(t *testing.T) {
	u := &User{ChatID: 1, Coins: []string{"BTC", "ETH"}}

	if u.RemoveCoin("SOL") {
		t.Fatal("removing an absent coin must report false")
	}
	if !reflect.DeepEqual(u.Coins, []string{"BTC", "ETH"}) {
		t.Fatalf("list mutated: %v", u.Coins)
	}

	if !u.RemoveCoin("BTC") {
		t.Fatal("removing a present coin must report true")
	}
	if !reflect.DeepEqual(u.Coins, []string{"ETH"}) {
		t.Fatalf("want [ETH], got %v", u.Coins)
	}
}

func TestUser_SortedCoinsDoesNotMutate(t *testing.T) {
	u := &User{Coins: []string{"ETH", "BTC"}}
	if got := u.SortedCoins(); !reflect.DeepEqual(got, []string{"BTC", "ETH"}) {
		t.Fatalf("want sorted copy, got %v", got)
	}
	if !reflect.DeepEqual(u.Coins, []string{"ETH", "BTC"}) {
		t.Fatalf("original order lost: %v", u.Coins)
	}
}

func TestNormalizeSymbol(t *testing.T) {
	got, err := NormalizeSymbol("  btc ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "BTC" {
		t.Fatalf("want BTC, got %s", got)
	}
	if _, err := NormalizeSymbol("   "); err == nil {
		t.Fatal("want error for blank symbol")
	}
}
