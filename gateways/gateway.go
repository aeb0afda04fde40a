// Package gateways bündelt die schmalen CRUD-Schnittstellen zum
// Profil-Backend: pro Entity-Familie ein Unterpaket mit einem Gateway,
// das list/create/update/delete über den transport.Client ausführt.
// Gateways fassen den Cache niemals an; Fehler der Transport-Taxonomie
// werden unverändert weitergereicht.
package gateways

import (
	"encoding/json"
	"fmt"
)

// Decode entpackt eine Backend-Antwort in den Zieltyp.
func Decode[T any](raw json.RawMessage) (T, error) {
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decoding backend response: %w", err)
	}
	return out, nil
}
