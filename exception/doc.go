/*
Package exception classifies errors returned by HTTP handlers.

Errors carry a class, e.g., "NotFoundException".
Classes form a tree rooted at "Exception", declared once with a Hierarchy.
A ValueMap relates classes to values, such as status codes or whether an error's message
may be shown to clients.
Entries of a ValueMap are evaluated in the order they are configured;
the first entry naming the error's class, or one of its ancestors, with a non-zero value wins:

	h := exception.NewHierarchy()
	h.Extend("FooException", exception.RootClass)
	h.Extend("BarException", "FooException")

	codes := exception.NewValueMap(h,
		exception.Entry[int]{Class: "FooException", Value: http.StatusNotFound},
		exception.Entry[int]{Class: exception.RootClass, Value: http.StatusInternalServerError},
	)

	codes.Resolve(exception.New("BarException", "no bar")).Value // 404
*/
package exception
