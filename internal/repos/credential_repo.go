package repos

import (
	"context"

	"bargainbay/internal/domain"
)

type CredentialRepo struct{ kv KV }

func NewCredentialRepo(kv KV) *CredentialRepo { return &CredentialRepo{kv: kv} }

func tokenKey(sid string) string { return "session:" + sid + ":token" }
func roleKey(sid string) string  { return "session:" + sid + ":role" }

func (r *CredentialRepo) Load(ctx context.Context, sid string) (domain.Credentials, error) {
	token, ok, err := r.kv.Get(ctx, tokenKey(sid))
	if err != nil || !ok {
		return domain.Credentials{}, err
	}
	role, _, err := r.kv.Get(ctx, roleKey(sid))
	if err != nil {
		return domain.Credentials{}, err
	}
	return domain.Credentials{Token: token, Role: role}, nil
}

func (r *CredentialRepo) Save(ctx context.Context, sid string, c domain.Credentials) error {
	if err := r.kv.Set(ctx, tokenKey(sid), c.Token); err != nil {
		return err
	}
	return r.kv.Set(ctx, roleKey(sid), c.Role)
}

func (r *CredentialRepo) Clear(ctx context.Context, sid string) error {
	return r.kv.Delete(ctx, tokenKey(sid), roleKey(sid))
}
