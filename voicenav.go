// Package voicenav turns uploaded HTML pages into voice-controlled pages.
// It discovers interactive elements (buttons, links, navigation links),
// lets a user bind spoken command phrases to a subset of them, and emits a
// JavaScript snippet that drives those elements from browser speech
// recognition.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package voicenav
