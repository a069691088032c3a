// Package export serializes working sets into the download formats: CSV for
// the posts and users tables, JSON snapshots for the dashboard.
package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"admindash/models"
	"admindash/overlay"
)

// postColumns is the fixed posts CSV column order.
var postColumns = []string{"ID", "Title", "Content", "User", "Type", "Created Date"}

// userColumns is the fixed users CSV column order.
var userColumns = []string{"ID", "Name", "Username", "Email", "Phone", "Website", "Company", "Street", "City", "Zipcode", "Is Favorite"}

// PostsCSV renders the working post set. Embedded quotes are escaped by
// doubling, per RFC 4180.
func PostsCSV(posts []models.Post, names map[int]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(postColumns); err != nil {
		return nil, err
	}
	for _, p := range posts {
		kind := "API"
		if p.IsLocal {
			kind = "Local"
		}
		created := p.CreatedAt
		if created == "" {
			created = "Unknown"
		}
		row := []string{
			strconv.FormatInt(p.ID, 10),
			p.Title,
			p.Body,
			overlay.AuthorName(names, p.UserID),
			kind,
			created,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// UsersCSV renders the annotated working user set.
func UsersCSV(users []overlay.WorkingUser) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(userColumns); err != nil {
		return nil, err
	}
	for _, u := range users {
		fav := "No"
		if u.IsFavorite {
			fav = "Yes"
		}
		row := []string{
			strconv.Itoa(u.ID),
			u.Name,
			u.Username,
			u.Email,
			u.Phone,
			u.Website,
			u.Company.Name,
			u.Address.Street,
			u.Address.City,
			u.Address.Zipcode,
			fav,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
