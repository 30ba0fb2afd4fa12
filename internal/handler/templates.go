package handler

import (
	"encoding/json"
	"fmt"
	"html/template"
	"path/filepath"
	"sync"
	"time"

	"github.com/Miyuranga305/Order-Platform-Frontend/internal/model"
	"github.com/Miyuranga305/Order-Platform-Frontend/internal/service"
)

// TemplateCache хранит разобранные шаблоны страниц.
// Каждая страница разбирается вместе с layout.html и исполняется через layout.
type TemplateCache struct {
	mu    sync.RWMutex
	cache map[string]*template.Template
}

// NewTemplateCache создаёт пустой кэш шаблонов.
func NewTemplateCache() *TemplateCache {
	return &TemplateCache{cache: make(map[string]*template.Template)}
}

// Load разбирает все страницы из каталога шаблонов.
func (tc *TemplateCache) Load(dir string) error {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	layout := filepath.Join(dir, "layout.html")

	pages, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return fmt.Errorf("glob templates: %w", err)
	}

	for _, page := range pages {
		name := filepath.Base(page)
		if name == "layout.html" {
			continue
		}

		tmpl, err := template.New("layout.html").Funcs(templateFuncs).ParseFiles(layout, page)
		if err != nil {
			return fmt.Errorf("parse template %s: %w", name, err)
		}
		tc.cache[name] = tmpl
	}

	return nil
}

// Get возвращает шаблон страницы по имени файла либо nil.
func (tc *TemplateCache) Get(name string) *template.Template {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.cache[name]
}

var templateFuncs = template.FuncMap{
	"currency": func(v float64) string {
		return fmt.Sprintf("$%.2f", v)
	},
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("Jan 2, 2006")
	},
	"formatDateTime": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("January 2, 2006 15:04")
	},
	"timeAgo":     timeAgo,
	"itemTotal":   service.ItemTotal,
	"itemSavings": service.ItemSavings,
	"statusProgress": func(s model.OrderStatus) int {
		switch s {
		case model.OrderStatusPending:
			return 25
		case model.OrderStatusProcessing:
			return 50
		case model.OrderStatusShipped:
			return 75
		default:
			return 100
		}
	},
	"parsePayload": parsePayload,
	"add":          func(a, b int) int { return a + b },
	"dict":         dict,
}

// dict собирает пары ключ-значение для передачи во вложенные шаблоны.
func dict(pairs ...any) map[string]any {
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			continue
		}
		m[key] = pairs[i+1]
	}
	return m
}

// timeAgo форматирует дату уведомления относительно текущего момента.
func timeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}

// parsePayload разбирает JSON-строку payload уведомления для отображения.
// Payload используется только для показа, поэтому ошибки разбора не фатальны.
func parsePayload(payload string) map[string]any {
	if payload == "" {
		return nil
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil
	}
	return parsed
}
