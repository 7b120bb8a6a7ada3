package league

import "fmt"

// League is a competition synced from the external data provider.
type League struct {
	ID          string
	Name        string
	Country     string
	LogoURL     string
	ExternalRef string
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.ExternalRef == "" {
		return fmt.Errorf("league external ref is required")
	}

	return nil
}
