package ead

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
)

// Namespace is the EAD 2002 schema namespace, declared once on <ead>.
const Namespace = "urn:isbn:1-931666-22-9"

// Component levels.
const (
	LevelCollection = "collection"
	LevelSeries     = "series"
	LevelSubseries  = "subseries"
	LevelItem       = "item"
)

// DAO roles.
const (
	RoleResource  = "resource"
	RoleThumbnail = "thumbnail"
)

type xmlEAD struct {
	XMLName  xml.Name    `xml:"ead"`
	Xmlns    string      `xml:"xmlns,attr"`
	Header   xmlHeader   `xml:"eadheader"`
	ArchDesc xmlArchDesc `xml:"archdesc"`
}

type xmlHeader struct {
	EADID       string `xml:"eadid"`
	TitleProper string `xml:"filedesc>titlestmt>titleproper"`
}

type xmlArchDesc struct {
	Level        string           `xml:"level,attr"`
	Did          xmlCollectionDid `xml:"did"`
	BiogHist     xmlNote          `xml:"bioghist"`
	ScopeContent xmlNote          `xml:"scopecontent"`
	Dsc          xmlDsc           `xml:"dsc"`
}

type xmlCollectionDid struct {
	UnitID       string          `xml:"unitid"`
	UnitTitle    string          `xml:"unittitle"`
	UnitDate     string          `xml:"unitdate"`
	Extent       string          `xml:"physdesc>extent"`
	Repository   xmlRepository   `xml:"repository"`
	LangMaterial xmlLangMaterial `xml:"langmaterial"`
}

type xmlRepository struct {
	CorpName     string   `xml:"corpname"`
	AddressLines []string `xml:"address>addressline"`
}

type xmlLangMaterial struct {
	Languages []xmlLanguage `xml:"language"`
}

type xmlLanguage struct {
	Code string `xml:"langcode,attr"`
	Name string `xml:",chardata"`
}

type xmlNote struct {
	P string `xml:"p"`
}

// xmlDsc holds c1 elements; their names come from XMLName.
type xmlDsc struct {
	Components []xmlComponent
}

type xmlComponent struct {
	XMLName      xml.Name
	ID           string   `xml:"id,attr"`
	Level        string   `xml:"level,attr"`
	Did          any      `xml:"did"`
	ScopeContent *xmlNote `xml:"scopecontent,omitempty"`
	Children     []xmlComponent
}

type xmlComponentDid struct {
	UnitTitle string `xml:"unittitle"`
}

type xmlItemDid struct {
	UnitID    string   `xml:"unitid"`
	UnitTitle string   `xml:"unittitle"`
	UnitDate  string   `xml:"unitdate"`
	Extent    string   `xml:"physdesc>extent"`
	DAOs      []xmlDAO `xml:"dao"`
}

type xmlDAO struct {
	Href string `xml:"href,attr"`
	Role string `xml:"role,attr"`
}

// Serialize renders the archive as an EAD document. It fails with a
// validation error, and no output, when mandatory collection fields or item
// identifiers are missing. Output for the same archive is byte-identical.
func Serialize(a *Archive) ([]byte, error) {
	if err := a.validate(); err != nil {
		return nil, err
	}

	body, err := xml.MarshalIndent(a.document(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal EAD document: %w", err)
	}

	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	out = append(out, '\n')
	return out, nil
}

// validate re-checks an archive that may not have come from New.
func (a *Archive) validate() error {
	if a == nil {
		return &ValidationError{Field: "archive", Message: "archive is required"}
	}
	errs := validateCollection(a.identity, a.contact, a.description)
	pos := 0
	_ = Walk(a.roots, func(n Node, _ int) error {
		item, ok := n.(*Item)
		if !ok {
			return nil
		}
		pos++
		errs = append(errs, checkItem(pos, ItemInput{
			Identifier:   item.Identifier,
			Title:        item.Identity.Title,
			Scope:        item.Description.Scope,
			ResourceURL:  item.ResourceURL,
			ThumbnailURL: item.ThumbnailURL,
		})...)
		return nil
	})
	return errors.Join(errs...)
}

func (a *Archive) document() xmlEAD {
	unitID, nodes := a.contents()

	langs := make([]xmlLanguage, 0, len(a.description.Languages))
	for _, code := range a.description.Languages {
		langs = append(langs, xmlLanguage{Code: code, Name: LanguageName(code)})
	}

	return xmlEAD{
		Xmlns: Namespace,
		Header: xmlHeader{
			EADID:       a.id,
			TitleProper: a.identity.Title,
		},
		ArchDesc: xmlArchDesc{
			Level: LevelCollection,
			Did: xmlCollectionDid{
				UnitID:    unitID,
				UnitTitle: a.identity.Title,
				UnitDate:  a.identity.DateDescription,
				Extent:    a.identity.Extent,
				Repository: xmlRepository{
					CorpName:     a.contact.Holder,
					AddressLines: []string{a.contact.Street, a.contact.Postcode},
				},
				LangMaterial: xmlLangMaterial{Languages: langs},
			},
			BiogHist:     xmlNote{P: a.description.BiographicalHistory},
			ScopeContent: xmlNote{P: a.description.Scope},
			Dsc:          xmlDsc{Components: components(nodes, 1)},
		},
	}
}

func components(nodes []Node, depth int) []xmlComponent {
	out := make([]xmlComponent, 0, len(nodes))
	name := xml.Name{Local: "c" + strconv.Itoa(depth)}
	for _, n := range nodes {
		switch n := n.(type) {
		case *Component:
			out = append(out, xmlComponent{
				XMLName:  name,
				ID:       n.ID,
				Level:    componentLevel(depth),
				Did:      xmlComponentDid{UnitTitle: n.Label},
				Children: components(n.Children, depth+1),
			})
		case *Item:
			out = append(out, xmlComponent{
				XMLName: name,
				ID:      n.ID,
				Level:   LevelItem,
				Did: xmlItemDid{
					UnitID:    n.Identifier,
					UnitTitle: n.Identity.Title,
					UnitDate:  n.Identity.DateDescription,
					Extent:    n.Identity.Extent,
					DAOs:      daos(n),
				},
				ScopeContent: &xmlNote{P: n.Description.Scope},
			})
		}
	}
	return out
}

func componentLevel(depth int) string {
	if depth == 1 {
		return LevelSeries
	}
	return LevelSubseries
}

// daos links the item's resources; links without a URL are left out.
func daos(item *Item) []xmlDAO {
	var out []xmlDAO
	if item.ResourceURL != "" {
		out = append(out, xmlDAO{Href: item.ResourceURL, Role: RoleResource})
	}
	if item.ThumbnailURL != "" {
		out = append(out, xmlDAO{Href: item.ThumbnailURL, Role: RoleThumbnail})
	}
	return out
}
