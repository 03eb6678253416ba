// Package scraper turns downloaded publisher pages into text that the
// full-text fetchers can match link patterns against.
//
// Pages arrive in whatever encoding the publisher uses. Decoding follows the
// usual browser order: byte order mark, Content-Type charset, <meta> prescan,
// then statistical detection with chardet for undeclared legacy encodings.
// Binary bodies (a DOI that resolves straight to a PDF) decode to "".
//
// Built on:
//   - mimetype: sniffing text vs. binary bodies
//   - x/net/html/charset: declared encodings and transcoding
//   - chardet: character encoding detection
package scraper
