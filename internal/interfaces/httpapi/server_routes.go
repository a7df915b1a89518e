package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/drivers", handler.ListDrivers)
	mux.HandleFunc("GET /v1/drivers/{driverID}", handler.GetDriver)
	mux.HandleFunc("GET /v1/races", handler.ListRaces)
	mux.HandleFunc("GET /v1/races/{raceID}", handler.GetRace)
	mux.HandleFunc("GET /v1/races/{raceID}/result", handler.GetRaceResult)
	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/dashboard", RequireAuth(verifier, http.HandlerFunc(handler.GetDashboard)))
	mux.Handle("GET /v1/roster", RequireAuth(verifier, http.HandlerFunc(handler.GetMyRoster)))
	mux.Handle("GET /v1/roster/swaps", RequireAuth(verifier, http.HandlerFunc(handler.ListMySwaps)))
	mux.Handle("POST /v1/roster/swaps", RequireAuth(verifier, http.HandlerFunc(handler.SwapGroupB)))
	mux.Handle("POST /v1/roster/picks", RequireAuth(verifier, http.HandlerFunc(handler.PickGroupC)))
	mux.Handle("GET /v1/predictions", RequireAuth(verifier, http.HandlerFunc(handler.ListMyPredictions)))
	mux.Handle("POST /v1/predictions", RequireAuth(verifier, http.HandlerFunc(handler.SubmitPrediction)))
	mux.Handle("GET /v1/invitations", RequireAuth(verifier, http.HandlerFunc(handler.ListMyInvitations)))
	mux.Handle("POST /v1/invitations", RequireAuth(verifier, http.HandlerFunc(handler.SendInvitation)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier, checker AdminChecker) {
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, RequireAdmin(checker, h))
	}

	mux.Handle("POST /v1/admin/users/register", admin(handler.RegisterUser))
	mux.Handle("GET /v1/admin/users", admin(handler.ListUsers))
	mux.Handle("POST /v1/admin/races", admin(handler.CreateRace))
	mux.Handle("POST /v1/admin/races/{raceID}/lock", admin(handler.LockRace))
	mux.Handle("POST /v1/admin/races/{raceID}/results", admin(handler.RecordRaceResult))
	mux.Handle("POST /v1/admin/predictions/{predictionID}/settle", admin(handler.SettlePrediction))
}
