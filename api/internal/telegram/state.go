package telegram

import "sync"

var busyChats sync.Map // chatID -> struct{}

// acquire marks the chat busy; false if a request already runs there.
func acquire(chatID int64) bool {
	_, loaded := busyChats.LoadOrStore(chatID, struct{}{})
	return !loaded
}

func release(chatID int64) { busyChats.Delete(chatID) }
