// Package i18n provides per-locale validator message catalogs.
//
// A catalog maps a locale to a table of message patterns keyed by
// validator error code, written in the same %placeholder% syntax as the
// built-in messages:
//
//	fr:
//	  emptyKey: "%key% est obligatoire"
//	  invalidEmail: "%key% : %value% n'est pas un e-mail valide"
//
// Tables are loaded from JSON or YAML files, an fs.FS directory or parsed
// content. Messages picks the table that best matches the requested
// languages with an x/text language.Matcher and completes it with the
// default locale:
//
//	catalog := i18n.NewCatalog(i18n.WithDefaultLocale("en"))
//	if err := catalog.LoadFS(ctx, translations, "messages"); err != nil {
//		return err
//	}
//
//	v := validator.New(input, rules,
//		validator.WithMessages(catalog.Messages(r.Header.Get("Accept-Language"))),
//	)
//
// Middleware stores the negotiated locale in the request context; GetLocale
// reads it back and LocaleExtractor adds it to log records.
package i18n
