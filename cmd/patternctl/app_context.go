package main

import (
	"github.com/platformeng/patternctl/internal/batch"
	"github.com/platformeng/patternctl/internal/catalog"
	"github.com/platformeng/patternctl/internal/classifier"
	"github.com/platformeng/patternctl/internal/logger"
	"github.com/platformeng/patternctl/internal/resolver"
)

// appContext carries the shared immutable dependencies of every command.
type appContext struct {
	log        *logger.Logger
	catalog    *catalog.Catalog
	resolver   *resolver.Resolver
	validator  *batch.Validator
	classifier *classifier.Classifier
}

func newAppContext(c *catalog.Catalog, log *logger.Logger) *appContext {
	r := resolver.New(c)
	return &appContext{
		log:        log,
		catalog:    c,
		resolver:   r,
		validator:  batch.New(r),
		classifier: classifier.New(c),
	}
}
