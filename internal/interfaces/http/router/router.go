package router

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouteRegistrar registers routes on a gin group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router wires the label form pages and the versioned label API into an engine.
// Page groups are mounted at the engine root, API groups under /api/<version>.
type Router struct {
	engine     *gin.Engine
	apiVersion string
	logger     *zap.Logger
	pages      []RouteRegistrar
	api        []RouteRegistrar
}

// RouterOption configures a Router
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix, "v1" by default
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// WithLogger logs every mounted route at debug level
func WithLogger(logger *zap.Logger) RouterOption {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRouter creates a Router for engine
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Pages adds registrars mounted at the engine root
func (r *Router) Pages(registrars ...RouteRegistrar) *Router {
	r.pages = append(r.pages, registrars...)
	return r
}

// Register adds registrars mounted under the versioned API prefix
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.api = append(r.api, registrars...)
	return r
}

// APIPrefix returns the versioned API base path
func (r *Router) APIPrefix() string {
	return "/api/" + r.apiVersion
}

// Setup mounts all registered groups on the engine
func (r *Router) Setup() {
	root := &r.engine.RouterGroup
	for _, registrar := range r.pages {
		registrar.RegisterRoutes(root)
	}

	api := r.engine.Group(r.APIPrefix())
	for _, registrar := range r.api {
		registrar.RegisterRoutes(api)
	}

	for _, route := range r.engine.Routes() {
		r.logger.Debug("Route mounted",
			zap.String("method", route.Method),
			zap.String("path", route.Path),
		)
	}
}

// DomainGroup collects the routes of one area under a shared prefix
type DomainGroup struct {
	name       string
	prefix     string
	routes     []routeDefinition
	middleware []gin.HandlerFunc
}

type routeDefinition struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewDomainGroup creates a group; an empty prefix mounts routes on the parent directly
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

// Use adds middleware applied to every route of the group
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

// GET registers a GET route
func (dg *DomainGroup) GET(relativePath string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodGet, relativePath, handlers)
}

// POST registers a POST route
func (dg *DomainGroup) POST(relativePath string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPost, relativePath, handlers)
}

func (dg *DomainGroup) handle(method, relativePath string, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{method: method, path: relativePath, handlers: handlers})
	return dg
}

// RegisterRoutes implements RouteRegistrar
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg
	if dg.prefix != "" || len(dg.middleware) > 0 {
		group = rg.Group(dg.prefix, dg.middleware...)
	}
	for _, route := range dg.routes {
		group.Handle(route.method, route.path, route.handlers...)
	}
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}

// Paths lists the full paths of the group's routes relative to its parent
func (dg *DomainGroup) Paths() []string {
	paths := make([]string, 0, len(dg.routes))
	for _, route := range dg.routes {
		p := path.Join("/", dg.prefix, route.path)
		paths = append(paths, route.method+" "+p)
	}
	return paths
}
