// Package style maps classified tokens to presentation descriptors and
// renders token streams as ANSI text or HTML.
//
// Descriptors are opaque strings owned by the language definition, usually
// CSS declarations such as "color: #48BDDF; font-weight: bold". The Styler
// never interprets them; renderers call Descriptor.Props to get the subset
// they understand.
package style
