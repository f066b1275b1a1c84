package service

import (
	userModel "ecoquest_backend/internals/features/users/user/model"
)

const (
	BadgeFirstStep    = "First Step"
	BadgeEcoWarrior   = "Eco Warrior"
	BadgeGreenThumb   = "Green Thumb"
	BadgeStreakKeeper = "Streak Keeper"
)

// BadgeFacts: state yang dibutuhkan untuk menilai aturan badge
type BadgeFacts struct {
	EcoPoints        int
	Streak           int
	ApprovedPlanting int64
}

type BadgeRule struct {
	Name   string
	Earned func(f BadgeFacts) bool
}

var BadgeRules = []BadgeRule{
	{Name: BadgeFirstStep, Earned: func(f BadgeFacts) bool { return f.EcoPoints > 0 }},
	{Name: BadgeEcoWarrior, Earned: func(f BadgeFacts) bool { return f.EcoPoints >= 100 }},
	{Name: BadgeGreenThumb, Earned: func(f BadgeFacts) bool { return f.ApprovedPlanting >= 5 }},
	{Name: BadgeStreakKeeper, Earned: func(f BadgeFacts) bool { return f.Streak >= 7 }},
}

// GrantBadges menambahkan badge yang syaratnya terpenuhi. Tidak pernah mencabut.
func GrantBadges(u *userModel.UserModel, f BadgeFacts) (granted []string) {
	for _, r := range BadgeRules {
		if r.Earned(f) && u.AddBadge(r.Name) {
			granted = append(granted, r.Name)
		}
	}
	return granted
}

// RevokeBadges mencabut badge yang syaratnya tidak lagi terpenuhi.
// Hanya dipanggil dari jalur reversal.
func RevokeBadges(u *userModel.UserModel, f BadgeFacts) (revoked []string) {
	for _, r := range BadgeRules {
		if u.HasBadge(r.Name) && !r.Earned(f) && u.RemoveBadge(r.Name) {
			revoked = append(revoked, r.Name)
		}
	}
	return revoked
}
