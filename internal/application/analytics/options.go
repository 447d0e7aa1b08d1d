// Package analytics contiene los casos de uso del módulo de Insights:
// KPIs, gráfica del dashboard, tendencias mensuales, salud del inventario y rollup.
package analytics

import "time"

// Option configura reloj y zona horaria de un caso de uso.
type Option func(*clock)

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(c *clock) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLocation zona del negocio para cortar días y meses.
func WithLocation(loc *time.Location) Option {
	return func(c *clock) {
		if loc != nil {
			c.loc = loc
		}
	}
}

type clock struct {
	now func() time.Time
	loc *time.Location
}

func newClock(opts []Option) clock {
	c := clock{now: time.Now, loc: time.UTC}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// Now hora actual en la zona del negocio.
func (c clock) Now() time.Time {
	return c.now().In(c.loc)
}

// TodayStart inicio del día actual en la zona del negocio.
func (c clock) TodayStart() time.Time {
	n := c.Now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, c.loc)
}

// tz nombre IANA que se envía a PostgreSQL.
func (c clock) tz() string {
	return c.loc.String()
}
