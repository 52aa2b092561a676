package events

import "github.com/myrjola/fitnesspro/internal/bmi"

// UserDataUpdated is published after a successful biometric submission has been stored.
type UserDataUpdated struct {
	ProfileID int64
	Result    bmi.Result
}

// UserDataCleared is published after a profile's biometric data has been deleted.
type UserDataCleared struct {
	ProfileID int64
}

// UserData groups the buses for the user data lifecycle.
type UserData struct {
	Updated Bus[UserDataUpdated]
	Cleared Bus[UserDataCleared]
}
