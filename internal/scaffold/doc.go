// Package scaffold generates new fpm packages from embedded templates. It
// powers the "fpmeta new" command: it writes fpm.toml through a codec and
// renders starter Fortran sources for the library, application, test and
// example sections that were asked for.
package scaffold
