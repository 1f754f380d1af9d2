// Package queries binds each upstream service to the session query cache:
// cache keys per resource, typed queries, and mutations with the keys they invalidate.
package queries

import "wastepoint/internal/query"

var (
	collectorPortalAll = query.K("collector-portal")
	portalAll          = query.K("portal")
	serviceAreasAll    = query.K("serviceAreas")
	routesAll          = query.K("routes")
	collectorsAll      = query.K("collectors")
	schedulesAll       = query.K("schedules")
	customersAll       = query.K("customers")
)

// CollectorPortalKeys mirrors the collector portal key tree.
var CollectorPortalKeys = struct {
	All            func() query.Key
	Dashboard      func() query.Key
	Schedules      func() query.Key
	ScheduleList   func(date, status string) query.Key
	ScheduleDetail func(id string) query.Key
	Routes         func() query.Key
	Profile        func() query.Key
}{
	All:       func() query.Key { return collectorPortalAll.With() },
	Dashboard: func() query.Key { return collectorPortalAll.With("dashboard") },
	Schedules: func() query.Key { return collectorPortalAll.With("schedules") },
	ScheduleList: func(date, status string) query.Key {
		return collectorPortalAll.With("schedules").WithParams(map[string]string{"date": date, "status": status})
	},
	ScheduleDetail: func(id string) query.Key { return collectorPortalAll.With("schedules", id) },
	Routes:         func() query.Key { return collectorPortalAll.With("routes") },
	Profile:        func() query.Key { return collectorPortalAll.With("profile") },
}

var PortalKeys = struct {
	All            func() query.Key
	Dashboard      func() query.Key
	Profile        func() query.Key
	PaymentMethods func() query.Key
	Schedules      func(date, status string) query.Key
	Invoices       func(status string) query.Key
	Payments       func(status string) query.Key
}{
	All:            func() query.Key { return portalAll.With() },
	Dashboard:      func() query.Key { return portalAll.With("dashboard") },
	Profile:        func() query.Key { return portalAll.With("profile") },
	PaymentMethods: func() query.Key { return portalAll.With("payment-methods") },
	Schedules: func(date, status string) query.Key {
		return portalAll.With("schedules").WithParams(map[string]string{"date": date, "status": status})
	},
	Invoices: func(status string) query.Key {
		return portalAll.With("invoices").WithParams(map[string]string{"status": status})
	},
	Payments: func(status string) query.Key {
		return portalAll.With("payments").WithParams(map[string]string{"status": status})
	},
}

// entityKeys is the list/detail tree shared by the operations resources.
type entityKeys struct {
	root query.Key
}

func (k entityKeys) All() query.Key     { return k.root.With() }
func (k entityKeys) Lists() query.Key   { return k.root.With("list") }
func (k entityKeys) Details() query.Key { return k.root.With("detail") }

func (k entityKeys) List(params map[string]string) query.Key {
	return k.Lists().WithParams(params)
}

func (k entityKeys) Detail(id string, sub ...string) query.Key {
	return k.Details().With(id).With(sub...)
}

// Named returns a key directly under the resource root, e.g. schedules/today.
func (k entityKeys) Named(name string) query.Key {
	return k.root.With(name)
}

var (
	ServiceAreaKeys = entityKeys{root: serviceAreasAll}
	RouteKeys       = entityKeys{root: routesAll}
	CollectorKeys   = entityKeys{root: collectorsAll}
	ScheduleKeys    = entityKeys{root: schedulesAll}
	CustomerKeys    = entityKeys{root: customersAll}
)
