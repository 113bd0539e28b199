package user

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"unityconsult/models"
)

type fakeUserRepo struct {
	byID    map[string]*models.User
	byEmail map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]*models.User),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *models.User) error {
	cp := *u
	r.byID[u.ID] = &cp
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u *models.User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return errors.New("not found")
	}
	cp := *u
	r.byID[u.ID] = &cp
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.byID[id], nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.byEmail[email], nil
}

func (r *fakeUserRepo) GetByTokenHash(ctx context.Context, hash string) (*models.User, error) {
	for _, u := range r.byID {
		if u.TokenHash == hash {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ListByRole(ctx context.Context, role string) ([]models.User, error) {
	var out []models.User
	for _, u := range r.byID {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	u, ok := r.byID[id]
	if !ok {
		return errors.New("not found")
	}
	delete(r.byEmail, u.Email)
	delete(r.byID, id)
	return nil
}

func validSignup() models.User {
	return models.User{
		Email:     "abebe@example.com",
		Password:  "Str0ng!pass",
		FirstName: "Abebe",
		LastName:  "Kebede",
	}
}

func TestRegisterUser(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults role to client", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := &DefaultUserService{Repo: repo}

		resp, err := svc.RegisterUser(ctx, validSignup())
		if err != nil {
			t.Fatalf("RegisterUser: %v", err)
		}
		if resp.Role != models.RoleClient {
			t.Errorf("Role = %q, want %q", resp.Role, models.RoleClient)
		}
		if resp.AccessToken == "" {
			t.Error("expected an access token")
		}

		stored := repo.byID[resp.ID]
		if stored == nil {
			t.Fatal("user was not stored")
		}
		if stored.PasswordHash == "" || stored.Password != "" {
			t.Error("plain password must be dropped and only the hash stored")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Str0ng!pass")); err != nil {
			t.Errorf("stored hash does not match the password: %v", err)
		}
		if stored.TokenHash == "" {
			t.Error("token hash must be stored")
		}
	})

	t.Run("rejects taken email", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := &DefaultUserService{Repo: repo}

		if _, err := svc.RegisterUser(ctx, validSignup()); err != nil {
			t.Fatalf("first RegisterUser: %v", err)
		}
		if _, err := svc.RegisterUser(ctx, validSignup()); !errors.Is(err, ErrEmailTaken) {
			t.Errorf("error = %v, want %v", err, ErrEmailTaken)
		}
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		svc := &DefaultUserService{Repo: newFakeUserRepo()}
		u := validSignup()
		u.Role = "SUPERUSER"
		if _, err := svc.RegisterUser(ctx, u); !errors.Is(err, ErrInvalidRole) {
			t.Errorf("error = %v, want %v", err, ErrInvalidRole)
		}
	})

	t.Run("rejects weak passwords", func(t *testing.T) {
		svc := &DefaultUserService{Repo: newFakeUserRepo()}
		weak := []string{"short1!", "alllowercase1!", "ALLUPPERCASE1!", "NoDigits!!", "NoSymbols11"}
		for _, pw := range weak {
			u := validSignup()
			u.Password = pw
			if _, err := svc.RegisterUser(ctx, u); err == nil {
				t.Errorf("password %q was accepted", pw)
			}
		}
	})
}
