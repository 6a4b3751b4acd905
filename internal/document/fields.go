package document

import (
	"fmt"
	"strconv"
	"strings"
)

// StringField resolves a dotted field path to a pointer into the
// document, e.g. "site.title", "shops.0.campaign.image_url",
// "detail_table.rows.1.cells.0". Only string-typed fields are
// addressable; enums and booleans go through SetString and the
// dedicated ops. Unknown paths and out-of-range indices are errors.
func (d *Document) StringField(path string) (*string, error) {
	parts := strings.Split(path, ".")
	bad := func() (*string, error) {
		return nil, fmt.Errorf("unknown field path %q", path)
	}

	switch parts[0] {
	case "site":
		if len(parts) != 2 {
			return bad()
		}
		switch parts[1] {
		case "title":
			return &d.Site.Title, nil
		case "subtitle":
			return &d.Site.Subtitle, nil
		case "logo_text":
			return &d.Site.LogoText, nil
		case "logo_url":
			return &d.Site.LogoURL, nil
		case "ad_label":
			return &d.Site.AdLabel, nil
		}
		return bad()

	case "colors":
		if len(parts) != 2 {
			return bad()
		}
		switch parts[1] {
		case "main":
			return &d.Colors.Main, nil
		case "sub":
			return &d.Colors.Sub, nil
		case "text":
			return &d.Colors.Text, nil
		case "bg":
			return &d.Colors.BG, nil
		case "accent":
			return &d.Colors.Accent, nil
		}
		return bad()

	case "hero":
		if len(parts) == 2 && parts[1] == "bg_image_url" {
			return &d.Hero.BGImageURL, nil
		}
		return bad()

	case "comparison_top":
		if len(parts) == 2 && parts[1] == "heading" {
			return &d.ComparisonTop.Heading, nil
		}
		if len(parts) < 4 || parts[1] != "shops" {
			return bad()
		}
		i, err := index(parts[2], len(d.ComparisonTop.Shops))
		if err != nil {
			return nil, fmt.Errorf("%q: %w", path, err)
		}
		shop := &d.ComparisonTop.Shops[i]
		if len(parts) == 4 {
			switch parts[3] {
			case "name":
				return &shop.Name, nil
			case "logo_url":
				return &shop.LogoURL, nil
			case "link":
				return &shop.Link, nil
			case "cta_text":
				return &shop.CTAText, nil
			}
			return bad()
		}
		if len(parts) == 6 && parts[3] == "metrics" {
			j, err := index(parts[4], len(shop.Metrics))
			if err != nil {
				return nil, fmt.Errorf("%q: %w", path, err)
			}
			switch parts[5] {
			case "label":
				return &shop.Metrics[j].Label, nil
			case "value":
				return &shop.Metrics[j].Value, nil
			}
		}
		return bad()

	case "recommend_section":
		if len(parts) == 2 && parts[1] == "heading" {
			return &d.RecommendSection.Heading, nil
		}
		return bad()

	case "detail_table":
		if len(parts) == 2 && parts[1] == "footer_note" {
			return &d.DetailTable.FooterNote, nil
		}
		if len(parts) == 3 && parts[1] == "columns" {
			i, err := index(parts[2], len(d.DetailTable.Columns))
			if err != nil {
				return nil, fmt.Errorf("%q: %w", path, err)
			}
			return &d.DetailTable.Columns[i], nil
		}
		if len(parts) >= 4 && parts[1] == "rows" {
			i, err := index(parts[2], len(d.DetailTable.Rows))
			if err != nil {
				return nil, fmt.Errorf("%q: %w", path, err)
			}
			row := &d.DetailTable.Rows[i]
			if len(parts) == 4 && parts[3] == "label" {
				return &row.Label, nil
			}
			if len(parts) == 5 && parts[3] == "cells" {
				j, err := index(parts[4], len(row.Cells))
				if err != nil {
					return nil, fmt.Errorf("%q: %w", path, err)
				}
				return &row.Cells[j], nil
			}
		}
		return bad()

	case "shops":
		if len(parts) < 3 {
			return bad()
		}
		i, err := index(parts[1], len(d.Shops))
		if err != nil {
			return nil, fmt.Errorf("%q: %w", path, err)
		}
		shop := &d.Shops[i]
		if len(parts) == 3 {
			switch parts[2] {
			case "name":
				return &shop.Name, nil
			case "catch_copy":
				return &shop.CatchCopy, nil
			case "sub_catch":
				return &shop.SubCatch, nil
			case "link":
				return &shop.Link, nil
			case "logo_url":
				return &shop.LogoURL, nil
			case "cta_text":
				return &shop.CTAText, nil
			case "cta_sub":
				return &shop.CTASub, nil
			}
			return bad()
		}
		switch parts[2] {
		case "campaign":
			if len(parts) == 4 {
				switch parts[3] {
				case "text":
					return &shop.Campaign.Text, nil
				case "sub_text":
					return &shop.Campaign.SubText, nil
				case "image_url":
					return &shop.Campaign.ImageURL, nil
				}
			}
		case "features":
			if len(parts) == 5 {
				j, err := index(parts[3], len(shop.Features))
				if err != nil {
					return nil, fmt.Errorf("%q: %w", path, err)
				}
				switch parts[4] {
				case "title":
					return &shop.Features[j].Title, nil
				case "text":
					return &shop.Features[j].Text, nil
				case "image_url":
					return &shop.Features[j].ImageURL, nil
				}
			}
		case "reviews":
			if len(parts) == 4 {
				j, err := index(parts[3], len(shop.Reviews))
				if err != nil {
					return nil, fmt.Errorf("%q: %w", path, err)
				}
				return &shop.Reviews[j], nil
			}
		case "extra_images":
			if len(parts) == 4 {
				j, err := index(parts[3], len(shop.ExtraImages))
				if err != nil {
					return nil, fmt.Errorf("%q: %w", path, err)
				}
				return &shop.ExtraImages[j], nil
			}
		}
		return bad()

	case "flow":
		if len(parts) == 2 && parts[1] == "heading" {
			return &d.Flow.Heading, nil
		}
		if len(parts) == 4 && parts[1] == "steps" {
			i, err := index(parts[2], len(d.Flow.Steps))
			if err != nil {
				return nil, fmt.Errorf("%q: %w", path, err)
			}
			step := &d.Flow.Steps[i]
			switch parts[3] {
			case "title":
				return &step.Title, nil
			case "text":
				return &step.Text, nil
			case "icon":
				return &step.Icon, nil
			case "icon_image_url":
				return &step.IconImageURL, nil
			}
		}
		return bad()

	case "summary_table":
		if len(parts) == 2 && parts[1] == "heading" {
			return &d.SummaryTable.Heading, nil
		}
		if len(parts) == 4 && parts[1] == "shops" {
			i, err := index(parts[2], len(d.SummaryTable.Shops))
			if err != nil {
				return nil, fmt.Errorf("%q: %w", path, err)
			}
			shop := &d.SummaryTable.Shops[i]
			switch parts[3] {
			case "name":
				return &shop.Name, nil
			case "features":
				return &shop.Features, nil
			case "scope":
				return &shop.Scope, nil
			case "speed":
				return &shop.Speed, nil
			case "cta_text":
				return &shop.CTAText, nil
			case "link":
				return &shop.Link, nil
			}
		}
		return bad()

	case "footer":
		if len(parts) == 2 && parts[1] == "copyright" {
			return &d.Footer.Copyright, nil
		}
		if len(parts) == 4 && (parts[1] == "shop_links" || parts[1] == "column_links") {
			links := &d.Footer.ShopLinks
			if parts[1] == "column_links" {
				links = &d.Footer.ColumnLinks
			}
			i, err := index(parts[2], len(*links))
			if err != nil {
				return nil, fmt.Errorf("%q: %w", path, err)
			}
			switch parts[3] {
			case "name":
				return &(*links)[i].Name, nil
			case "link":
				return &(*links)[i].Link, nil
			}
		}
		return bad()
	}
	return bad()
}

// SetString writes value to the field at path. Beyond StringField it
// also handles the enum fields (metric ratings, flow icon types, with
// validation) and shop info entries ("shops.<i>.info.<label>", created
// when absent).
func (d *Document) SetString(path, value string) error {
	parts := strings.Split(path, ".")

	// shops.<i>.info.<label> sets an ordered info pair; the label may
	// itself contain dots, so re-join the tail.
	if len(parts) >= 4 && parts[0] == "shops" && parts[2] == "info" {
		i, err := index(parts[1], len(d.Shops))
		if err != nil {
			return fmt.Errorf("%q: %w", path, err)
		}
		d.Shops[i].Info.Set(strings.Join(parts[3:], "."), value)
		return nil
	}

	if len(parts) == 6 && parts[0] == "comparison_top" && parts[3] == "metrics" && parts[5] == "rating" {
		i, err := index(parts[2], len(d.ComparisonTop.Shops))
		if err != nil {
			return fmt.Errorf("%q: %w", path, err)
		}
		shop := &d.ComparisonTop.Shops[i]
		j, err := index(parts[4], len(shop.Metrics))
		if err != nil {
			return fmt.Errorf("%q: %w", path, err)
		}
		r := Rating(value)
		if r != RatingDoubleCircle && r != RatingCircle && r != RatingTriangle {
			return fmt.Errorf("invalid rating %q", value)
		}
		shop.Metrics[j].Rating = r
		return nil
	}

	if len(parts) == 4 && parts[0] == "flow" && parts[1] == "steps" && parts[3] == "icon_type" {
		i, err := index(parts[2], len(d.Flow.Steps))
		if err != nil {
			return fmt.Errorf("%q: %w", path, err)
		}
		t := IconType(value)
		if t != IconEmoji && t != IconImage {
			return fmt.Errorf("invalid icon type %q", value)
		}
		d.Flow.Steps[i].IconType = t
		return nil
	}

	field, err := d.StringField(path)
	if err != nil {
		return err
	}
	*field = value
	return nil
}

// IsImageField reports whether path addresses an image reference, the
// only fields the upload endpoint may target.
func IsImageField(path string) bool {
	if strings.HasSuffix(path, "logo_url") ||
		strings.HasSuffix(path, "image_url") ||
		strings.HasSuffix(path, "bg_image_url") {
		return true
	}
	parts := strings.Split(path, ".")
	return len(parts) == 4 && parts[0] == "shops" && parts[2] == "extra_images"
}

func index(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad index %q", s)
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("index %d out of range (len %d)", i, n)
	}
	return i, nil
}
