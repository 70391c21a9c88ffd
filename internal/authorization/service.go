// Package authorization decides whether an authenticated user may
// perform an action, based on the permission list stored on its role.
package authorization

import (
	"errors"

	"github.com/openshelf/openshelf/internal/permission"
	userdomain "github.com/openshelf/openshelf/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ErrForbidden is deliberately detail-free: responses never name the
// missing permission.
var ErrForbidden = errors.New("insufficient permissions")

type Service struct {
	log *zap.Logger
}

var Module = fx.Module("authorization.service",
	fx.Provide(New),
)

func New(log *zap.Logger) *Service {
	return &Service{log: log.Named("authorization.service")}
}

// Require fails unless the user's role grants every required
// permission. A role row whose permission list does not parse grants
// nothing; it never crashes the request.
func (s *Service) Require(user *userdomain.User, required ...permission.Permission) error {
	if user == nil || user.Role == nil {
		return ErrForbidden
	}

	assigned := permission.ParseSet(user.Role.Permissions)
	if missing := assigned.Missing(required); len(missing) > 0 {
		s.log.Debug("permission denied",
			zap.String("user_id", user.ID.String()),
			zap.String("role", user.Role.Name),
		)
		return ErrForbidden
	}
	return nil
}
