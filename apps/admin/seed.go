package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/kelasdev/kelas/core/content"
	"github.com/kelasdev/kelas/core/course"
)

var sampleCourses = []course.NewCourse{
	{
		Title:       "JavaScript Fundamentals",
		Description: "Learn the basics of JavaScript programming language",
		Difficulty:  course.Beginner,
		Language:    "javascript",
		ImageURL:    "/javascript-course.jpg",
	},
	{
		Title:       "Python for Beginners",
		Description: "Start your programming journey with Python",
		Difficulty:  course.Beginner,
		Language:    "python",
		ImageURL:    "/python-course.jpg",
	},
	{
		Title:       "React Development",
		Description: "Build modern web applications with React",
		Difficulty:  course.Intermediate,
		Language:    "javascript",
		ImageURL:    "/react-course.jpg",
	},
	{
		Title:       "Node.js Backend",
		Description: "Create powerful backend applications with Node.js",
		Difficulty:  course.Intermediate,
		Language:    "javascript",
		ImageURL:    "/nodejs-course.jpg",
	},
	{
		Title:       "Data Structures & Algorithms",
		Description: "Master computer science fundamentals",
		Difficulty:  course.Advanced,
		Language:    "python",
		ImageURL:    "/dsa-course.jpg",
	},
}

// sampleLessons are added as introduction modules to the first sample course.
var sampleLessons = []struct{ title, text string }{
	{"Introduction to JavaScript", "Welcome to JavaScript! In this lesson, you will learn what JavaScript is and why it is important."},
	{"Variables and Data Types", "Learn about different data types in JavaScript and how to declare variables."},
	{"Functions and Scope", "Understand how to create and use functions in JavaScript."},
}

// seed creates the sample courses. It does nothing if any course is already published.
func (cli *commandLine) seed(ctx context.Context) error {
	existing, err := cli.courseSvc.ListPublished(ctx)
	if err != nil {
		return errors.Wrap(err, "listing courses")
	}
	if len(existing) > 0 {
		_, _ = fmt.Fprintf(cli.out, "%d courses found, skipping seed\n", len(existing))
		return nil
	}

	created := make([]course.Course, 0, len(sampleCourses))
	for _, nc := range sampleCourses {
		c, err := cli.courseSvc.Create(ctx, nc)
		if err != nil {
			return errors.Wrapf(err, "creating course %q", nc.Title)
		}
		created = append(created, c)
	}
	_, _ = fmt.Fprintf(cli.out, "created %d courses\n", len(created))

	_, err = cli.courseSvc.Edit(ctx, created[0].ID, func(e *course.Editor) (bool, error) {
		for _, l := range sampleLessons {
			m, _ := e.AddModule(content.TypeIntroduction, l.title)
			if _, err := e.UpdateModule(m.ID, course.ModuleUpdate{Content: content.Patch{}.Set("text", l.text)}); err != nil {
				return false, err
			}
		}
		return true, nil
	})
	if err != nil {
		return errors.Wrap(err, "adding lessons")
	}
	_, _ = fmt.Fprintf(cli.out, "created %d lessons for %s\n", len(sampleLessons), created[0].Title)
	return nil
}
