package services

import (
	"math"
	"sort"
	"time"

	"github.com/NeuraX-HQ/neurax-web-app/models"
)

func DaysLeft(endsAt, now time.Time) int {
	days := int(math.Ceil(endsAt.Sub(now).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

func percentOf(progress, target int) float64 {
	if target <= 0 {
		return 0
	}
	return math.Min(float64(progress)/float64(target), 1)
}

// UnreadCount is the number of opponent messages in the thread.
func UnreadCount(messages []models.ChatMessage) int {
	n := 0
	for _, m := range messages {
		if m.Sender == models.SenderOpponent {
			n++
		}
	}
	return n
}

func ViewChallenge(c models.Challenge, userName string, now time.Time) models.ChallengeView {
	if userName == "" {
		userName = "You"
	}
	v := models.ChallengeView{
		Challenge:   c,
		DaysLeft:    DaysLeft(c.EndsAt, now),
		UserPercent: percentOf(c.UserProgress, c.TargetDays),
		UnreadCount: UnreadCount(c.Messages),
		Leading:     true,
	}
	standings := []models.Standing{
		{Name: userName, Progress: c.UserProgress, Percent: v.UserPercent, IsUser: true},
	}
	if c.Opponent != nil {
		v.OpponentPercent = percentOf(c.Opponent.Progress, c.TargetDays)
		v.Leading = c.UserProgress >= c.Opponent.Progress
		standings = append(standings, models.Standing{
			Name: c.Opponent.Name, Progress: c.Opponent.Progress, Percent: v.OpponentPercent,
		})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Progress > standings[j].Progress
	})
	v.Standings = standings
	return v
}
