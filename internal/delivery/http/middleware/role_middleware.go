package middleware

import (
	"net/http"

	"vet-clinic/internal/domain/entity"
	"vet-clinic/pkg/response"
)

// RequireUserType allows the request through only for the given account types.
// The type is read from context, set by AuthMiddleware from the JWT claims.
func RequireUserType(allowed ...entity.UserType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userType, ok := GetUserTypeFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "User type not found")
				return
			}

			for _, t := range allowed {
				if userType == t {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "You don't have permission to access this resource")
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireUserType(entity.UserTypeAdmin)(next)
}
