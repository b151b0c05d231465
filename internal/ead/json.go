package ead

import "encoding/json"

type jsonArchive struct {
	ID          string      `json:"id"`
	UnitID      string      `json:"unitid"`
	Identity    Identity    `json:"identity"`
	Contact     Contact     `json:"contact"`
	Description Description `json:"description"`
	Items       []Node      `json:"items"`
}

type jsonComponent struct {
	Type     string `json:"type"`
	ID       string `json:"id"`
	Label    string `json:"label"`
	Path     string `json:"path"`
	Children []Node `json:"children"`
}

type jsonItem struct {
	Type         string   `json:"type"`
	ID           string   `json:"id"`
	Identifier   string   `json:"identifier"`
	Identity     Identity `json:"identity"`
	Scope        string   `json:"scope"`
	URL          string   `json:"url"`
	ThumbnailURL string   `json:"thumbnail_url"`
}

// MarshalJSON renders the archive with the same collection prefix handling
// and child order as the XML document.
func (a *Archive) MarshalJSON() ([]byte, error) {
	unitID, nodes := a.contents()
	if nodes == nil {
		nodes = []Node{}
	}
	return json.Marshal(jsonArchive{
		ID:          a.id,
		UnitID:      unitID,
		Identity:    a.identity,
		Contact:     a.contact,
		Description: a.description,
		Items:       nodes,
	})
}

func (c *Component) MarshalJSON() ([]byte, error) {
	children := c.Children
	if children == nil {
		children = []Node{}
	}
	return json.Marshal(jsonComponent{
		Type:     "component",
		ID:       c.ID,
		Label:    c.Label,
		Path:     c.Path,
		Children: children,
	})
}

func (i *Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonItem{
		Type:         "item",
		ID:           i.ID,
		Identifier:   i.Identifier,
		Identity:     i.Identity,
		Scope:        i.Description.Scope,
		URL:          i.ResourceURL,
		ThumbnailURL: i.ThumbnailURL,
	})
}
