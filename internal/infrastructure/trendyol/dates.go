package trendyol

import (
	"strconv"
	"strings"
	"time"
)

// API-ul Trendyol primește datele ca epoch în milisecunde. Datele fără fus orar
// se interpretează în ora României înainte de conversie.
var bucharest = mustLoadLocation("Europe/Bucharest")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		// Fără tzdata pe sistem: EET fix (fără DST) e mai bine decât UTC.
		return time.FixedZone("EET", 2*60*60)
	}
	return loc
}

// formatDate normalizează o dată ISO (YYYY-MM-DD sau YYYY-MM-DDTHH:MM:SS,
// opțional cu sufix Z/offset) la epoch-milisecunde, ca string de query.
// O valoare care nu se poate parsa trece mai departe neschimbată (fail-soft):
// furnizorul o va respinge singur dacă e invalidă.
func formatDate(s string) string {
	t, ok := parseISO(s)
	if !ok {
		return s
	}
	return strconv.FormatInt(t.UnixMilli(), 10)
}

func parseISO(s string) (time.Time, bool) {
	raw := strings.Replace(s, "Z", "+00:00", 1)
	// Cu offset explicit: se respectă fusul precizat.
	for _, layout := range []string{"2006-01-02T15:04:05-07:00", "2006-01-02-07:00"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	// Fără fus: interpretare în Europe/Bucharest.
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, raw, bucharest); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
