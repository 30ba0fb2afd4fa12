package service

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Miyuranga305/Order-Platform-Frontend/internal/model"
)

// UserQuery описывает параметры отображения списка пользователей.
type UserQuery struct {
	Search  string
	Role    string // all, ADMIN, USER
	Status  string // all, active, inactive
	SortAsc bool
}

// FilterUsers возвращает пользователей, прошедших поиск и фильтры,
// отсортированных по имени. Поиск — подстрока без учёта регистра
// по имени, email и идентификатору.
func FilterUsers(users []model.User, q UserQuery) []model.User {
	filtered := make([]model.User, 0, len(users))

	term := strings.ToLower(strings.TrimSpace(q.Search))
	for _, u := range users {
		if term != "" && !matchesUser(u, term) {
			continue
		}
		if q.Role != "" && q.Role != "all" && !strings.EqualFold(string(u.Role), q.Role) {
			continue
		}
		switch q.Status {
		case "active":
			if !u.Active {
				continue
			}
		case "inactive":
			if u.Active {
				continue
			}
		}
		filtered = append(filtered, u)
	}

	sort.Slice(filtered, func(i, j int) bool {
		a := strings.ToLower(filtered[i].FullName)
		b := strings.ToLower(filtered[j].FullName)
		if q.SortAsc {
			return a < b
		}
		return a > b
	})

	return filtered
}

func matchesUser(u model.User, term string) bool {
	return strings.Contains(strings.ToLower(u.FullName), term) ||
		strings.Contains(strings.ToLower(u.Email), term) ||
		strings.Contains(strconv.FormatInt(u.ID, 10), term)
}

// UserStats содержит сводку для административного списка пользователей.
type UserStats struct {
	Total    int
	Active   int
	Admins   int
	NewToday int
}

// SummarizeUsers считает сводку по полному списку пользователей.
func SummarizeUsers(users []model.User, now time.Time) UserStats {
	stats := UserStats{Total: len(users)}

	y, m, d := now.Date()
	for _, u := range users {
		if u.Active {
			stats.Active++
		}
		if u.IsAdmin() {
			stats.Admins++
		}
		uy, um, ud := u.CreatedAt.In(now.Location()).Date()
		if uy == y && um == m && ud == d {
			stats.NewToday++
		}
	}

	return stats
}
