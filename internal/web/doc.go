// Package web serves the country browser over HTTP.
//
// Every view has its own URL: the list lives at "/" with its controls in the
// query string, and a detail page lives at "/countries/{code}". Browser history
// therefore works without client state; border buttons are plain links and the
// back control calls history.back().
//
// The catalog is published once through an atomic pointer. Until then every
// page answers 503 with a "Loading..." page.
package web
