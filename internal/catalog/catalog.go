// Package catalog содержит публичный каталог услуг сайта.
package catalog

import (
	"github.com/gosimple/slug"
)

// Service - услуга, показываемая на публичных страницах.
type Service struct {
	ID   int
	Name string
	Slug string
}

// Catalog хранит неизменяемый список услуг.
type Catalog struct {
	services []Service
}

// New создает каталог из названий. ID назначаются по порядку с единицы,
// slug строится из названия.
func New(names ...string) *Catalog {
	services := make([]Service, 0, len(names))
	for i, name := range names {
		services = append(services, Service{
			ID:   i + 1,
			Name: name,
			Slug: slug.Make(name),
		})
	}
	return &Catalog{services: services}
}

// Default возвращает каталог услуг по умолчанию.
func Default() *Catalog {
	return New("Consulting", "Training")
}

// List возвращает копию списка услуг.
func (c *Catalog) List() []Service {
	out := make([]Service, len(c.services))
	copy(out, c.services)
	return out
}

// BySlug ищет услугу по slug.
func (c *Catalog) BySlug(s string) (Service, bool) {
	for _, svc := range c.services {
		if svc.Slug == s {
			return svc, true
		}
	}
	return Service{}, false
}
