package server

import (
	"net/http"
	"sort"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/openshelf/openshelf/internal/permission"
	userdomain "github.com/openshelf/openshelf/internal/user/domain"
)

type userResponse struct {
	ID        snowflake.ID `json:"id"`
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	FullName  string       `json:"full_name"`
	IsActive  bool         `json:"is_active"`
	Role      string       `json:"role"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type createUserRequest struct {
	Username string        `json:"username"`
	Email    string        `json:"email"`
	FullName string        `json:"full_name"`
	Password string        `json:"password"`
	RoleID   *snowflake.ID `json:"role_id"`
}

type updateUserRequest struct {
	Username *string       `json:"username"`
	Email    *string       `json:"email"`
	FullName *string       `json:"full_name"`
	Password *string       `json:"password"`
	IsActive *bool         `json:"is_active"`
	RoleID   *snowflake.ID `json:"role_id"`
}

type roleResponse struct {
	ID          snowflake.ID `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Permissions []string     `json:"permissions"`
}

func toUserResponse(u *userdomain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		Role:      u.RoleName(),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// CurrentUser returns the authenticated identity, whichever credential
// scheme established it.
func (s *Server) CurrentUser(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (s *Server) ListUsers(c *gin.Context) {
	skip, limit, err := parsePagination(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	users, err := s.userSvc.List(c.Request.Context(), skip, limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp := make([]userResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// CreateUser registers an account on behalf of someone else, with an
// optional explicit role.
func (s *Server) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if req.RoleID != nil {
		if err := s.authzSvc.Require(currentUser(c), permission.RoleManage); err != nil {
			AbortWithError(c, err)
			return
		}
	}

	user, err := s.userSvc.Register(c.Request.Context(), userdomain.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if req.RoleID != nil {
		user, err = s.userSvc.Update(c.Request.Context(), user.ID, userdomain.UpdateRequest{RoleID: req.RoleID})
		if err != nil {
			AbortWithError(c, err)
			return
		}
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

func (s *Server) GetUser(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	user, err := s.userSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func (s *Server) UpdateUser(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	// Changing someone's role needs more than member:update.
	if req.RoleID != nil {
		if err := s.authzSvc.Require(currentUser(c), permission.RoleManage); err != nil {
			AbortWithError(c, err)
			return
		}
	}

	user, err := s.userSvc.Update(c.Request.Context(), id, userdomain.UpdateRequest{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
		IsActive: req.IsActive,
		RoleID:   req.RoleID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func (s *Server) DeleteUser(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.userSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) ListRoles(c *gin.Context) {
	roles, err := s.userSvc.ListRoles(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp := make([]roleResponse, 0, len(roles))
	for _, role := range roles {
		resp = append(resp, roleResponse{
			ID:          role.ID,
			Name:        role.Name,
			Description: role.Description,
			Permissions: permissionStrings(role.Permissions),
		})
	}
	c.JSON(http.StatusOK, resp)
}

func permissionStrings(serialized string) []string {
	set := permission.ParseSet(serialized)
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, string(p))
	}
	sort.Strings(out)
	return out
}
