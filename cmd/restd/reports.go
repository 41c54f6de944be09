package main

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/rest/app"
	"github.com/xy-planning-network/rest/exception"
	"github.com/xy-planning-network/rest/http/router"
	"github.com/xy-planning-network/rest/view"
)

// ReportMissingClass is raised when no report has the requested ID.
// Configure it as a child of NotFound to map it to a 404:
//
//	exception:
//	  classes:
//	    ReportMissing: NotFound
const ReportMissingClass = "ReportMissing"

type report struct {
	XMLName xml.Name  `json:"-" yaml:"-" xml:"report"`
	ID      int       `json:"id" yaml:"id" xml:"id"`
	Title   string    `json:"title" yaml:"title" xml:"title"`
	Created time.Time `json:"created" yaml:"created" xml:"created"`
}

type reportList struct {
	XMLName xml.Name  `json:"-" yaml:"-" xml:"reports"`
	Reports []*report `json:"reports" yaml:"reports" xml:"report"`
}

// newReport is the payload creating a report, posted as a form, JSON or YAML.
type newReport struct {
	Title string `json:"title" yaml:"title" schema:"title" validate:"required,max=80"`
}

// reports is an in-memory store of reports served by the example service.
type reports struct {
	a *app.App

	mu     sync.RWMutex
	byID   map[int]*report
	nextID int
}

func newReports(a *app.App) *reports {
	return &reports{a: a, byID: make(map[int]*report), nextID: 1}
}

func (rs *reports) routes() {
	rs.a.HandleRoutes([]router.Route{
		{Path: "/api/reports", Method: http.MethodGet, Handler: rs.list},
		{Path: "/api/reports", Method: http.MethodPost, Handler: rs.create},
		{Path: "/api/reports/{id:[0-9]+}", Method: http.MethodGet, Handler: rs.show},
		{Path: "/api/reports/{id:[0-9]+}.{_format}", Method: http.MethodGet, Handler: rs.show},
	})
}

func (rs *reports) list(w http.ResponseWriter, r *http.Request) error {
	rs.mu.RLock()
	list := reportList{Reports: make([]*report, 0, len(rs.byID))}
	for _, rep := range rs.byID {
		list.Reports = append(list.Reports, rep)
	}
	rs.mu.RUnlock()

	sort.Slice(list.Reports, func(i, j int) bool { return list.Reports[i].ID < list.Reports[j].ID })
	return rs.a.Respond(w, r, list)
}

func (rs *reports) create(w http.ResponseWriter, r *http.Request) error {
	var in newReport
	if err := rs.a.Parse(r, &in); err != nil {
		return err
	}

	rs.mu.Lock()
	rep := &report{ID: rs.nextID, Title: in.Title, Created: time.Now().UTC()}
	rs.byID[rep.ID] = rep
	rs.nextID++
	rs.mu.Unlock()

	return rs.a.Respond(w, r, rep,
		view.Code(http.StatusCreated),
		view.Header("Location", fmt.Sprintf("/api/reports/%d", rep.ID)),
	)
}

func (rs *reports) show(w http.ResponseWriter, r *http.Request) error {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return exception.New(exception.InvalidArgumentClass, "id must be a number", exception.WithCause(err))
	}

	rs.mu.RLock()
	rep, ok := rs.byID[id]
	rs.mu.RUnlock()

	if !ok {
		return exception.New(ReportMissingClass, fmt.Sprintf("Report %d not found", id))
	}

	return rs.a.Respond(w, r, rep)
}
