package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-loan-engine-go/core"
)

var (
	// ErrDecodingSeedFailed is returned when the seed document is not valid JSON.
	ErrDecodingSeedFailed = errors.New("decoding catalog seed failed")

	// ErrInvalidSeedEntry is returned when an entry of the seed document cannot be used.
	ErrInvalidSeedEntry = errors.New("invalid catalog seed entry")

	// ErrReadingSeedFileFailed is returned when the seed file cannot be opened.
	ErrReadingSeedFileFailed = errors.New("reading catalog seed file failed")
)

type seedDocument struct {
	Books []bookRecord `json:"books"`
	Users []userRecord `json:"users"`
}

type bookRecord struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	ISBN      string `json:"isbn"`
	Available *bool  `json:"available"`
}

type userRecord struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Active *bool  `json:"active"`
}

// Load decodes a seed document and returns the populated gateways.
// Missing "available" and "active" flags default to true, a missing role to READER.
func Load(r io.Reader) (*Books, *Users, error) {
	var doc seedDocument
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, errors.Join(ErrDecodingSeedFailed, err)
	}

	books := make([]core.Book, 0, len(doc.Books))
	for i, rec := range doc.Books {
		book, err := rec.toBook()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: books[%d]: %w", ErrInvalidSeedEntry, i, err)
		}

		books = append(books, book)
	}

	users := make([]core.User, 0, len(doc.Users))
	for i, rec := range doc.Users {
		user, err := rec.toUser()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: users[%d]: %w", ErrInvalidSeedEntry, i, err)
		}

		users = append(users, user)
	}

	return NewBooks(books...), NewUsers(users...), nil
}

// LoadFile is Load on the contents of the file at path.
func LoadFile(path string) (*Books, *Users, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, nil, errors.Join(ErrReadingSeedFileFailed, err)
	}
	defer func() { _ = f.Close() }()

	return Load(f)
}

func (r bookRecord) toBook() (core.Book, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return core.Book{}, err
	}

	return core.Book{
		ID:        id,
		Title:     r.Title,
		Author:    r.Author,
		ISBN:      r.ISBN,
		Available: r.Available == nil || *r.Available,
	}, nil
}

func (r userRecord) toUser() (core.User, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return core.User{}, err
	}

	role := core.Role(r.Role)
	if role == "" {
		role = core.RoleReader
	}

	return core.User{
		ID:     id,
		Name:   r.Name,
		Email:  r.Email,
		Role:   role,
		Active: r.Active == nil || *r.Active,
	}, nil
}
