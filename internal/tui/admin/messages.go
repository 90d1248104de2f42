package admin

import "github.com/sarathi-rto/sarathi/internal/api"

// AdminLoadedMsg carries the analytics snapshot and the application list.
type AdminLoadedMsg struct {
	Analytics    *api.Analytics
	Applications []api.Application
	Err          error
}

// ActionDoneMsg is the result of an approve or reject call.
type ActionDoneMsg struct {
	Action string
	Resp   *api.ActionResponse
	Err    error
}
